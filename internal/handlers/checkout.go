package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Codingworld786/ecommerce-fullstack/internal/models"
	"github.com/Codingworld786/ecommerce-fullstack/internal/shop"
)

// checkoutFallback sends the visitor back to the stage whose prerequisite
// is missing.
func (h *ShopHandler) checkoutFallback(w http.ResponseWriter, r *http.Request, sess *sessions.Session, rec *shop.Record, err error) {
	flashError(sess, err)
	target := "/cart"
	if errors.Is(err, shop.ErrAddressRequired) {
		target = "/checkout"
	}
	h.redirect(w, r, sess, rec, target)
}

func (h *ShopHandler) CheckoutAddress(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	items, err := h.Shop.BeginCheckout(rec)
	if err != nil {
		h.checkoutFallback(w, r, sess, rec, err)
		return
	}

	address := models.Address{}
	if rec.CheckoutAddress != nil {
		address = *rec.CheckoutAddress
	}
	data := h.viewData(r, sess, rec)
	data["CartItems"] = items
	data["Subtotal"] = h.Shop.Subtotal(rec)
	data["Address"] = address
	data["Stage"] = h.Shop.Stage(rec).String()
	h.render(w, r, sess, rec, "checkout.html", data)
}

func (h *ShopHandler) SubmitAddress(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	addr := models.Address{
		FullName:     r.FormValue("full_name"),
		AddressLine1: r.FormValue("address_line1"),
		AddressLine2: r.FormValue("address_line2"),
		City:         r.FormValue("city"),
		State:        r.FormValue("state"),
		ZipCode:      r.FormValue("zip_code"),
		Country:      r.FormValue("country"),
		Phone:        r.FormValue("phone"),
	}
	if err := h.Shop.SubmitAddress(rec, addr); err != nil {
		h.checkoutFallback(w, r, sess, rec, err)
		return
	}
	h.redirect(w, r, sess, rec, "/checkout/payment")
}

func (h *ShopHandler) Payment(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	items, err := h.Shop.BeginPayment(rec)
	if err != nil {
		h.checkoutFallback(w, r, sess, rec, err)
		return
	}

	payment := models.Payment{}
	if rec.CheckoutPayment != nil {
		payment = *rec.CheckoutPayment
	}
	subtotal := h.Shop.Subtotal(rec)
	tax := shop.Tax(subtotal)

	data := h.viewData(r, sess, rec)
	data["CartItems"] = items
	data["Subtotal"] = subtotal
	data["Shipping"] = shop.ShippingFlat
	data["Tax"] = tax
	data["Total"] = shop.Total(subtotal, shop.ShippingFlat, tax)
	data["Address"] = *rec.CheckoutAddress
	data["Payment"] = payment
	data["PaymentSaved"] = rec.CheckoutPayment != nil
	data["Stage"] = h.Shop.Stage(rec).String()
	h.render(w, r, sess, rec, "payment.html", data)
}

func (h *ShopHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	pay := models.Payment{
		CardNumber: r.FormValue("card_number"),
		Expiry:     r.FormValue("expiry"),
		CVV:        r.FormValue("cvv"),
		NameOnCard: r.FormValue("name_on_card"),
	}
	if err := h.Shop.SubmitPayment(rec, pay); err != nil {
		h.checkoutFallback(w, r, sess, rec, err)
		return
	}
	flash(sess, "success", "Payment details saved. Review your order and place it when ready.")
	h.redirect(w, r, sess, rec, "/checkout/payment")
}

func (h *ShopHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	order, err := h.Shop.PlaceOrder(rec)
	if err != nil {
		h.checkoutFallback(w, r, sess, rec, err)
		return
	}
	h.redirect(w, r, sess, rec, "/order-confirmation/"+order.OrderID)
}

// BuyNow replaces the cart with one unit and jumps to the address stage.
func (h *ShopHandler) BuyNow(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	if _, err := h.Shop.BuyNow(rec, productID(r)); err != nil {
		flashError(sess, err)
		h.redirect(w, r, sess, rec, "/")
		return
	}
	h.redirect(w, r, sess, rec, "/checkout")
}
