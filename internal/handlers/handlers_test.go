package handlers

import (
	"bytes"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codingworld786/ecommerce-fullstack/internal/catalog"
	"github.com/Codingworld786/ecommerce-fullstack/internal/shop"
)

type testClient struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
}

func newTestClient(t *testing.T, limiter *RateLimiter, orderIDs ...string) *testClient {
	t.Helper()

	tc := NewTemplateCache()
	require.NoError(t, tc.Load("../../templates"))

	next := 0
	s := shop.New(catalog.Default(),
		shop.WithClock(func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }),
		shop.WithOrderIDs(func() string {
			if next < len(orderIDs) {
				id := orderIDs[next]
				next++
				return id
			}
			return shop.NewOrderID()
		}),
	)

	// httptest serves plain HTTP, so the cookie must not be Secure or the jar
	// drops it.
	store := sessions.NewCookieStore(securecookie.GenerateRandomKey(32))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	h := &ShopHandler{
		Shop:         s,
		Templates:    tc,
		SessionStore: store,
	}
	mux := http.NewServeMux()
	h.Routes(mux, limiter)
	mux.Handle("/api/", h.API([]string{"*"}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{
		t:      t,
		server: srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *testClient) do(req *http.Request) (*http.Response, string) {
	c.t.Helper()
	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(body)
}

func (c *testClient) get(path string) (*http.Response, string) {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.server.URL+path, nil)
	require.NoError(c.t, err)
	return c.do(req)
}

func (c *testClient) post(path string, form url.Values) *http.Response {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodPost, c.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ := c.do(req)
	return resp
}

func assertRedirect(t *testing.T, resp *http.Response, target string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, target, resp.Header.Get("Location"))
}

func addressForm() url.Values {
	return url.Values{
		"full_name":     {"Ada Lovelace"},
		"address_line1": {"12 St James's Square"},
		"city":          {"London"},
		"zip_code":      {"SW1Y 4JH"},
		"country":       {"UK"},
	}
}

func paymentForm() url.Values {
	return url.Values{
		"card_number":  {"4242 4242 4242 4242"},
		"expiry":       {"12/30"},
		"cvv":          {"123"},
		"name_on_card": {"A Lovelace"},
	}
}

func TestIndex_ListsCatalog(t *testing.T) {
	c := newTestClient(t, nil)

	resp, body := c.get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Classic Linen Blazer")
	assert.Contains(t, body, "Leather Belt")
	assert.Contains(t, body, "Cart (0)")
}

func TestCategoryPages_Filter(t *testing.T) {
	c := newTestClient(t, nil)

	_, body := c.get("/women")
	assert.Contains(t, body, "Floral Midi Dress")
	assert.NotContains(t, body, "Denim Jacket")

	_, body = c.get("/men")
	assert.Contains(t, body, "Denim Jacket")
	assert.NotContains(t, body, "Floral Midi Dress")
}

func TestIndex_Search(t *testing.T) {
	c := newTestClient(t, nil)

	_, body := c.get("/?q=WOOL")
	assert.Contains(t, body, "Wool Blend Coat")
	assert.Contains(t, body, "Merino Wool Jumper")
	assert.NotContains(t, body, "Denim Jacket")
}

func TestProduct_NotFoundRedirectsWithFlash(t *testing.T) {
	c := newTestClient(t, nil)

	resp, _ := c.get("/product/999")
	assertRedirect(t, resp, "/")

	_, body := c.get("/")
	assert.Contains(t, body, "Product not found.")

	_, body = c.get("/")
	assert.NotContains(t, body, "Product not found.", "flash must be shown once")
}

func TestProduct_Detail(t *testing.T) {
	c := newTestClient(t, nil)

	resp, body := c.get("/product/7")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Oxford Cotton Shirt")
	assert.Contains(t, body, "$49.99")
	assert.Contains(t, body, "Crisp formal shirt in pure cotton")
}

func TestCartAdd_RedirectsToNextAndCounts(t *testing.T) {
	c := newTestClient(t, nil)

	resp := c.post("/cart/add/7", url.Values{"next": {"/men"}})
	assertRedirect(t, resp, "/men")
	resp = c.post("/cart/add/7", nil)
	assertRedirect(t, resp, "/")

	_, body := c.get("/cart")
	assert.Contains(t, body, "Cart (2)")
	assert.Contains(t, body, "to your cart.")
	assert.Contains(t, body, `value="2"`)
	assert.Contains(t, body, "$99.98")
}

func TestCartAdd_RejectsForeignNext(t *testing.T) {
	c := newTestClient(t, nil)

	resp := c.post("/cart/add/1", url.Values{"next": {"//evil.example/"}})
	assertRedirect(t, resp, "/")
}

func TestCartAdd_UnknownProduct(t *testing.T) {
	c := newTestClient(t, nil)

	resp := c.post("/cart/add/404", nil)
	assertRedirect(t, resp, "/")

	_, body := c.get("/cart")
	assert.Contains(t, body, "Product not found.")
	assert.Contains(t, body, "Cart (0)")
}

func TestCartUpdate_SetsAndRemoves(t *testing.T) {
	c := newTestClient(t, nil)
	c.post("/cart/add/3", nil)

	resp := c.post("/cart/update/3", url.Values{"quantity": {"5"}})
	assertRedirect(t, resp, "/cart")
	_, body := c.get("/cart")
	assert.Contains(t, body, "Cart (5)")

	c.post("/cart/update/3", url.Values{"quantity": {"0"}})
	_, body = c.get("/cart")
	assert.Contains(t, body, "Cart (0)")
	assert.Contains(t, body, "Your cart is empty.")
}

func TestCartRemove(t *testing.T) {
	c := newTestClient(t, nil)
	c.post("/cart/add/3", nil)

	resp := c.post("/cart/remove/3", nil)
	assertRedirect(t, resp, "/cart")
	_, body := c.get("/cart")
	assert.Contains(t, body, "Item removed from cart.")
	assert.Contains(t, body, "Cart (0)")
}

func TestWishlistToggle(t *testing.T) {
	c := newTestClient(t, nil)

	resp := c.post("/wishlist/toggle/2", url.Values{"next": {"/wishlist"}})
	assertRedirect(t, resp, "/wishlist")
	_, body := c.get("/wishlist")
	assert.Contains(t, body, "Floral Midi Dress")
	assert.Contains(t, body, "Wishlist (1)")

	c.post("/wishlist/toggle/2", nil)
	_, body = c.get("/wishlist")
	assert.Contains(t, body, "from your wishlist.")
	assert.Contains(t, body, "Nothing saved yet.")
}

func TestCheckout_EmptyCartGoesBackToCart(t *testing.T) {
	c := newTestClient(t, nil)

	resp, _ := c.get("/checkout")
	assertRedirect(t, resp, "/cart")
	_, body := c.get("/cart")
	assert.Contains(t, body, "Your cart is empty. Add items before checkout.")
}

func TestPayment_RequiresAddress(t *testing.T) {
	c := newTestClient(t, nil)
	c.post("/cart/add/1", nil)

	resp, _ := c.get("/checkout/payment")
	assertRedirect(t, resp, "/checkout")
	_, body := c.get("/checkout")
	assert.Contains(t, body, "Please enter a shipping address first.")
}

func TestCheckout_FullFlow(t *testing.T) {
	c := newTestClient(t, nil, "ABCD1234")
	c.post("/cart/add/7", nil)
	c.post("/cart/add/7", nil)

	resp := c.post("/checkout", addressForm())
	assertRedirect(t, resp, "/checkout/payment")

	_, body := c.get("/checkout/payment")
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "$8.00")
	assert.Contains(t, body, "$113.97")

	resp = c.post("/checkout/payment", paymentForm())
	assertRedirect(t, resp, "/checkout/payment")

	resp = c.post("/checkout/place-order", nil)
	assertRedirect(t, resp, "/order-confirmation/ABCD1234")

	resp, body = c.get("/order-confirmation/ABCD1234")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ABCD1234")
	assert.Contains(t, body, "$113.97")
	assert.Contains(t, body, "card ending in 4242")
	assert.Contains(t, body, "Cart (0)")

	_, body = c.get("/orders")
	assert.Contains(t, body, "ABCD1234")

	resp, _ = c.get("/checkout")
	assertRedirect(t, resp, "/cart")
}

func TestCheckout_StepIndicatorFollowsStage(t *testing.T) {
	c := newTestClient(t, nil)
	c.post("/cart/add/4", nil)

	_, body := c.get("/checkout")
	assert.Contains(t, body, `data-stage="address_pending"`)
	assert.Contains(t, body, `<li class="current">Shipping</li>`)

	c.post("/checkout", addressForm())
	_, body = c.get("/checkout/payment")
	assert.Contains(t, body, `data-stage="payment_pending"`)
	assert.Contains(t, body, `<li class="current">Payment</li>`)

	c.post("/checkout/payment", paymentForm())
	_, body = c.get("/checkout/payment")
	assert.Contains(t, body, `data-stage="payment_set"`)
	assert.Contains(t, body, `<li class="done">Payment</li>`)
	assert.Contains(t, body, `<li class="current">Place order</li>`)

	// Going back to change the address keeps the saved progress.
	_, body = c.get("/checkout")
	assert.Contains(t, body, `data-stage="payment_set"`)
	assert.Contains(t, body, `<li class="done">Shipping</li>`)
}

func TestPlaceOrder_WithoutPayment(t *testing.T) {
	c := newTestClient(t, nil, "NOPAY001")
	c.post("/cart/add/12", nil)
	c.post("/checkout", addressForm())

	resp := c.post("/checkout/place-order", nil)
	assertRedirect(t, resp, "/order-confirmation/NOPAY001")

	_, body := c.get("/order-confirmation/NOPAY001")
	assert.Contains(t, body, "card ending in 0000")
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	c := newTestClient(t, nil)

	resp := c.post("/checkout/place-order", nil)
	assertRedirect(t, resp, "/cart")
}

func TestPlaceOrder_RateLimited(t *testing.T) {
	c := newTestClient(t, NewRateLimiter(1, 1))

	resp := c.post("/checkout/place-order", nil)
	assertRedirect(t, resp, "/cart")
	resp = c.post("/checkout/place-order", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestBuyNow_ReplacesCart(t *testing.T) {
	c := newTestClient(t, nil)
	c.post("/cart/add/1", nil)
	c.post("/cart/add/2", nil)
	// Consume the "Added ... to your cart" flashes.
	_, body := c.get("/cart")
	require.Contains(t, body, "Cart (2)")

	resp := c.post("/buy-now/10", nil)
	assertRedirect(t, resp, "/checkout")

	_, body = c.get("/checkout")
	assert.Contains(t, body, "Denim Jacket")
	assert.NotContains(t, body, "Classic Linen Blazer")
	assert.Contains(t, body, "Cart (1)")
}

func TestSession_PersistsOverPlainHTTP(t *testing.T) {
	c := newTestClient(t, nil)

	resp := c.post("/cart/add/1", nil)
	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == DefaultSessionName {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.False(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)

	_, body := c.get("/cart")
	assert.Contains(t, body, "Cart (1)")
}

func TestBuyNow_UnknownProduct(t *testing.T) {
	c := newTestClient(t, nil)

	resp := c.post("/buy-now/0", nil)
	assertRedirect(t, resp, "/")
}

func TestOrderConfirmation_UnknownOrder(t *testing.T) {
	c := newTestClient(t, nil)

	resp, _ := c.get("/order-confirmation/ZZZZZZZZ")
	assertRedirect(t, resp, "/")
	_, body := c.get("/")
	assert.Contains(t, body, "Order not found.")
}

func TestOrderReceipt(t *testing.T) {
	c := newTestClient(t, nil, "RCPT0001")
	c.post("/cart/add/5", nil)
	c.post("/checkout", addressForm())
	c.post("/checkout/place-order", nil)

	resp, body := c.get("/order-confirmation/RCPT0001/receipt.pdf")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix([]byte(body), []byte("%PDF-")))

	resp, _ = c.get("/order-confirmation/OTHER000/receipt.pdf")
	assertRedirect(t, resp, "/")
}

func TestAPI_Products(t *testing.T) {
	c := newTestClient(t, nil)

	req, err := http.NewRequest(http.MethodGet, c.server.URL+"/api/products?category=men&q=wool", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	resp, body := c.do(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, body, `"name":"Merino Wool Jumper"`)
	assert.Contains(t, body, `"price":"69.99"`)
	assert.NotContains(t, body, "Wool Blend Coat")
}

func TestAPI_ProductErrors(t *testing.T) {
	c := newTestClient(t, nil)

	resp, _ := c.get("/api/products?category=kids")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = c.get("/api/products/99")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := c.get("/api/products/4")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Cashmere Crew Neck Sweater")
}

func TestNextURL(t *testing.T) {
	tests := []struct {
		name    string
		next    string
		referer string
		want    string
	}{
		{"form next", "/women?q=coat", "", "/women?q=coat"},
		{"referer same host", "", "http://shop.test/product/3", "/product/3"},
		{"referer other host", "", "http://evil.test/product/3", "/"},
		{"protocol relative next", "//evil.test", "", "/"},
		{"backslash next", "/\\evil.test", "", "/"},
		{"absolute next", "https://evil.test/", "", "/"},
		{"nothing", "", "", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			if tt.next != "" {
				form.Set("next", tt.next)
			}
			r := httptest.NewRequest(http.MethodPost, "http://shop.test/cart/add/1", strings.NewReader(form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}
			assert.Equal(t, tt.want, nextURL(r))
		})
	}
}
