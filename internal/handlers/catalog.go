package handlers

import (
	"net/http"

	"github.com/Codingworld786/ecommerce-fullstack/internal/models"
	"github.com/Codingworld786/ecommerce-fullstack/internal/shop"
)

// Index lists the whole catalog, narrowed by ?q= when present.
func (h *ShopHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.listCatalog(w, r, "")
}

func (h *ShopHandler) Women(w http.ResponseWriter, r *http.Request) {
	h.listCatalog(w, r, models.CategoryWomen)
}

func (h *ShopHandler) Men(w http.ResponseWriter, r *http.Request) {
	h.listCatalog(w, r, models.CategoryMen)
}

func (h *ShopHandler) listCatalog(w http.ResponseWriter, r *http.Request, filter models.Category) {
	sess, rec := h.open(r)
	query := r.URL.Query().Get("q")

	data := h.viewData(r, sess, rec)
	data["Products"] = h.Shop.Catalog().Search(query, filter)
	data["FilterCategory"] = string(filter)
	h.render(w, r, sess, rec, "index.html", data)
}

func (h *ShopHandler) Product(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	p, ok := h.Shop.Catalog().Lookup(productID(r))
	if !ok {
		flashError(sess, shop.ErrProductNotFound)
		h.redirect(w, r, sess, rec, "/")
		return
	}

	data := h.viewData(r, sess, rec)
	data["Product"] = p
	h.render(w, r, sess, rec, "product.html", data)
}
