package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Codingworld786/ecommerce-fullstack/internal/receipt"
	"github.com/Codingworld786/ecommerce-fullstack/internal/shop"
)

func (h *ShopHandler) OrderConfirmation(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	order, err := shop.FindOrder(rec, r.PathValue("id"))
	if err != nil {
		flashError(sess, err)
		h.redirect(w, r, sess, rec, "/")
		return
	}

	data := h.viewData(r, sess, rec)
	data["Order"] = order
	h.render(w, r, sess, rec, "order_confirmation.html", data)
}

func (h *ShopHandler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	data := h.viewData(r, sess, rec)
	data["Orders"] = shop.OrderHistory(rec)
	h.render(w, r, sess, rec, "orders.html", data)
}

// OrderReceipt streams a PDF receipt for one of the visitor's orders.
func (h *ShopHandler) OrderReceipt(w http.ResponseWriter, r *http.Request) {
	sess, rec := h.open(r)

	order, err := shop.FindOrder(rec, r.PathValue("id"))
	if err != nil {
		flashError(sess, err)
		h.redirect(w, r, sess, rec, "/")
		return
	}

	pdf, err := receipt.Render(order)
	if err != nil {
		slog.Error("Failed to render receipt", "order_id", order.OrderID, "error", err)
		http.Error(w, "Error generating receipt", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="receipt-`+order.OrderID+`.pdf"`)
	w.Write(pdf)
}
