package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET v1/cart (200 OK)
// POST v1/cart/items JSON {"slug", "variant_id", "quantity"} (200 OK, 400, 404, 422)
// PUT v1/cart/items/{key} JSON {"quantity"} (200 OK)
// DELETE v1/cart/items/{key} (200 OK)
// DELETE v1/cart (200 OK)
// GET v1/cart/watch SSE stream of cart states

type CartHandler struct {
	cart         port.CartManager
	currencyCode string
}

func RegisterCart(
	mux *http.ServeMux, cart port.CartManager, currencyCode string,
) {
	h := CartHandler{cart, currencyCode}
	mux.HandleFunc("GET /v1/cart", requireSession(h.GetCart))
	mux.HandleFunc("GET /v1/cart/watch", requireSession(h.WatchCart))
	mux.HandleFunc("POST /v1/cart/items", requireSession(h.PostItem))
	mux.HandleFunc("PUT /v1/cart/items/{key}", requireSession(h.PutItem))
	mux.HandleFunc("DELETE /v1/cart/items/{key}", requireSession(h.DeleteItem))
	mux.HandleFunc("DELETE /v1/cart", requireSession(h.DeleteCart))
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	state := h.cart.Cart(r.Context(), sessionID(r))
	writeJSON(w, toCartView(state, h.currencyCode), log)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.Slug == "" {
		http.Error(w, "slug is required", http.StatusBadRequest)
		return
	}

	state, err := h.cart.AddItem(
		r.Context(), sessionID(r), req.Slug, req.VariantID, req.Quantity,
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrVariantUnresolved):
			http.Error(
				w, "variant is not purchasable",
				http.StatusUnprocessableEntity,
			)
		default:
			http.Error(
				w, "failed to add item", http.StatusServiceUnavailable,
			)
			log.Error("failed to add item", "err", err)
		}
		return
	}

	writeJSON(w, toCartView(state, h.currencyCode), log)
}

func (h CartHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutItem"
	log := slog.With("op", op)

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	state := h.cart.UpdateQuantity(
		r.Context(), sessionID(r), r.PathValue("key"), req.Quantity,
	)
	writeJSON(w, toCartView(state, h.currencyCode), log)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	state := h.cart.RemoveItem(r.Context(), sessionID(r), r.PathValue("key"))
	writeJSON(w, toCartView(state, h.currencyCode), log)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteCart"
	log := slog.With("op", op)

	state := h.cart.ClearCart(r.Context(), sessionID(r))
	writeJSON(w, toCartView(state, h.currencyCode), log)
}

// WatchCart streams the full cart state on every change as server-sent
// events until the client disconnects.
func (h CartHandler) WatchCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.WatchCart"
	log := slog.With("op", op)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusNotImplemented)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	sid := sessionID(r)
	updates := make(chan domain.CartState, 8)
	unsubscribe := h.cart.Subscribe(sid, func(s domain.CartState) {
		select {
		case updates <- s:
		default:
			// Full mailbox: evict the oldest queued state so the
			// newest always lands and the client converges on the
			// final state. Notifications are serialized per session,
			// so the freed slot cannot be taken by another sender.
			select {
			case <-updates:
			default:
			}
			updates <- s
		}
	})
	defer unsubscribe()

	h.writeEvent(w, flusher, h.cart.Cart(r.Context(), sid), log)

	for {
		select {
		case <-r.Context().Done():
			return
		case state := <-updates:
			h.writeEvent(w, flusher, state, log)
		}
	}
}

func (h CartHandler) writeEvent(
	w http.ResponseWriter,
	flusher http.Flusher,
	state domain.CartState,
	log *slog.Logger,
) {
	data, err := json.Marshal(toCartView(state, h.currencyCode))
	if err != nil {
		log.Error("failed to marshal cart state", "err", err)
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}
