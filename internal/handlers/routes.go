package handlers

import "net/http"

// Routes registers the storefront on mux. Order placement goes through
// limiter when it is not nil.
func (h *ShopHandler) Routes(mux *http.ServeMux, limiter *RateLimiter) {
	placeOrder := h.PlaceOrder
	if limiter != nil {
		placeOrder = limiter.Middleware(h.PlaceOrder)
	}

	// Shop
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /women", h.Women)
	mux.HandleFunc("GET /men", h.Men)
	mux.HandleFunc("GET /product/{id}", h.Product)

	// Cart
	mux.HandleFunc("GET /cart", h.Cart)
	mux.HandleFunc("POST /cart/add/{id}", h.CartAdd)
	mux.HandleFunc("POST /cart/update/{id}", h.CartUpdate)
	mux.HandleFunc("POST /cart/remove/{id}", h.CartRemove)

	// Wishlist
	mux.HandleFunc("GET /wishlist", h.Wishlist)
	mux.HandleFunc("POST /wishlist/toggle/{id}", h.WishlistToggle)

	// Checkout
	mux.HandleFunc("GET /checkout", h.CheckoutAddress)
	mux.HandleFunc("POST /checkout", h.SubmitAddress)
	mux.HandleFunc("GET /checkout/payment", h.Payment)
	mux.HandleFunc("POST /checkout/payment", h.SubmitPayment)
	mux.HandleFunc("POST /checkout/place-order", placeOrder)
	mux.HandleFunc("POST /buy-now/{id}", h.BuyNow)

	// Orders
	mux.HandleFunc("GET /order-confirmation/{id}", h.OrderConfirmation)
	mux.HandleFunc("GET /order-confirmation/{id}/receipt.pdf", h.OrderReceipt)
	mux.HandleFunc("GET /orders", h.OrderHistory)
}
