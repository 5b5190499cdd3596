package handlers

import (
	"fmt"
	"net/http"

	"github.com/Codingworld786/ecommerce-fullstack/internal/shop"
)

func (h *ShopHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	data := h.viewData(r, sess, rec)
	data["Products"] = h.Shop.WishlistProducts(rec)
	h.render(w, r, sess, rec, "wishlist.html", data)
}

func (h *ShopHandler) WishlistToggle(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	result, p, err := h.Shop.ToggleWishlist(rec, productID(r))
	if err != nil {
		h.redirect(w, r, sess, rec, "/")
		return
	}

	name := p.Name
	if name == "" {
		name = "item"
	}
	switch result {
	case shop.WishlistAdded:
		flash(sess, "success", fmt.Sprintf("Added %q to your wishlist.", name))
	case shop.WishlistRemoved:
		flash(sess, "info", fmt.Sprintf("Removed %q from your wishlist.", name))
	}
	h.redirect(w, r, sess, rec, nextURL(r))
}
