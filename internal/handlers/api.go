package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"github.com/Codingworld786/ecommerce-fullstack/internal/models"
)

// API serves the read-only catalog as JSON for cross-origin clients.
func (h *ShopHandler) API(allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", h.apiListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.apiGetProduct)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet},
		MaxAge:         600,
	})
	return c.Handler(mux)
}

func (h *ShopHandler) apiListProducts(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.URL.Query().Get("category"))
	if category != "" && !category.Valid() {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown category"})
		return
	}
	products := h.Shop.Catalog().Search(r.URL.Query().Get("q"), category)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *ShopHandler) apiGetProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Shop.Catalog().Lookup(productID(r))
	if !ok {
		respondWithJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	respondWithJSON(w, http.StatusOK, p)
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}
