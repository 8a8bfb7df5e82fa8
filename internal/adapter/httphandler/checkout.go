package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// POST v1/checkout (200 OK, 400 empty cart, 409 in flight, 422 rejected, 502 transport)
// GET v1/checkout/status (200 OK)
// GET v1/checkout/order (200 OK, 404 no completed order)

type CheckoutHandler struct {
	checkout port.CheckoutProcessor
}

func RegisterCheckout(mux *http.ServeMux, checkout port.CheckoutProcessor) {
	h := CheckoutHandler{checkout}
	mux.HandleFunc("POST /v1/checkout", requireSession(h.PostCheckout))
	mux.HandleFunc("GET /v1/checkout/status", requireSession(h.GetStatus))
	mux.HandleFunc("GET /v1/checkout/order", requireSession(h.GetOrder))
}

func (h CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostCheckout"
	log := slog.With("op", op)

	order, err := h.checkout.Checkout(r.Context(), sessionID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCartEmpty):
			http.Error(w, "cart is empty", http.StatusBadRequest)
		case errors.Is(err, domain.ErrCheckoutInFlight):
			http.Error(
				w, "checkout is already submitting", http.StatusConflict,
			)
		case errors.Is(err, domain.ErrOrderRejected):
			http.Error(
				w, "order was rejected", http.StatusUnprocessableEntity,
			)
			log.Warn("order rejected", "err", err)
		default:
			http.Error(
				w, "order service is unavailable", http.StatusBadGateway,
			)
			log.Error("failed to create order", "err", err)
		}
		return
	}

	writeJSON(w, toOrderView(order), log)
}

// GetStatus reports where the session's handoff state machine is, so
// the storefront can poll while a submission is in flight.
func (h CheckoutHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.GetStatus"
	log := slog.With("op", op)

	writeJSON(w, toStatusView(h.checkout.Status(sessionID(r))), log)
}

func (h CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.GetOrder"
	log := slog.With("op", op)

	order, err := h.checkout.CompletedOrder(r.Context(), sessionID(r))
	if err != nil {
		http.Error(w, "no completed order", http.StatusNotFound)
		return
	}

	writeJSON(w, toOrderView(order), log)
}
