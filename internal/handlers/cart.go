package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
)

func (h *ShopHandler) Cart(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	data := h.viewData(r, sess, rec)
	data["CartItems"] = h.Shop.CartItems(rec)
	data["Subtotal"] = h.Shop.Subtotal(rec)
	h.render(w, r, sess, rec, "cart.html", data)
}

func (h *ShopHandler) CartAdd(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	p, err := h.Shop.AddToCart(rec, productID(r))
	if err != nil {
		flashError(sess, err)
		h.redirect(w, r, sess, rec, "/")
		return
	}

	flash(sess, "success", fmt.Sprintf("Added %q to your cart.", p.Name))
	h.redirect(w, r, sess, rec, nextURL(r))
}

func (h *ShopHandler) CartUpdate(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	id := productID(r)
	qty, valid := h.Shop.SetQuantity(rec, id, r.FormValue("quantity"))
	if !valid {
		slog.Debug("Unparsable quantity, defaulted", "product_id", id, "quantity", qty)
	}
	h.redirect(w, r, sess, rec, "/cart")
}

func (h *ShopHandler) CartRemove(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	h.Shop.RemoveFromCart(rec, productID(r))
	flash(sess, "info", "Item removed from cart.")
	h.redirect(w, r, sess, rec, "/cart")
}
