package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET v1/products?featured=true (200 OK)
// GET v1/products/{slug} (200 OK, 404 Not found)
// POST v1/products/{slug}/resolve JSON {"selection": {...}} (200 OK)

type ProductsHandler struct {
	products port.ProductReader
	resolver port.VariantResolver
}

func RegisterProducts(
	mux *http.ServeMux,
	products port.ProductReader,
	resolver port.VariantResolver,
) {
	h := ProductsHandler{products, resolver}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{slug}", h.GetProduct)
	mux.HandleFunc("POST /v1/products/{slug}/resolve", h.PostResolve)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	featuredOnly := r.URL.Query().Get("featured") == "true"

	ps, err := h.products.Products(r.Context(), featuredOnly)
	if err != nil {
		http.Error(w, "failed to read products", http.StatusServiceUnavailable)
		log.Error("failed to read products", "err", err)
		return
	}

	views := make([]Product, len(ps))
	for i, p := range ps {
		views[i] = toProductView(p)
	}
	writeJSON(w, views, log)
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.products.Product(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to read product", http.StatusServiceUnavailable)
		log.Error("failed to read product", "err", err)
		return
	}

	writeJSON(w, toProductView(p), log)
}

func (h ProductsHandler) PostResolve(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostResolve"
	log := slog.With("op", op)

	var req ResolveRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON data", http.StatusBadRequest)
			log.Warn("failed to parse JSON", "err", err)
			return
		}
	}

	rv, err := h.resolver.Resolve(
		r.Context(),
		r.PathValue("slug"),
		domain.OptionSelection(req.Selection),
	)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to resolve", http.StatusServiceUnavailable)
		log.Error("failed to resolve", "err", err)
		return
	}

	writeJSON(w, toResolvedView(rv), log)
}

func writeJSON(w http.ResponseWriter, v any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
