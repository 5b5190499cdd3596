package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := rl.Middleware(okHandler)

	hit := func(addr string) int {
		r := httptest.NewRequest(http.MethodPost, "/checkout/place-order", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		h(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:1000"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:2000"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:3000"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.2:1000"))
}

func TestRateLimiter_Evict(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	rl.visitor("10.0.0.1")
	rl.visitor("10.0.0.2")
	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)

	rl.evict(time.Now())

	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRateLimiter_CleanupStops(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		rl.Cleanup(time.Millisecond, stop)
		close(done)
	}()
	close(stop)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Cleanup did not return after stop")
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	w := httptest.NewRecorder()
	SecurityHeadersMiddleware(http.HandlerFunc(okHandler)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
}

func TestLoggingMiddleware_PassesStatus(t *testing.T) {
	w := httptest.NewRecorder()
	LoggingMiddleware(http.HandlerFunc(okHandler)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetFlash_ConsumesMessages(t *testing.T) {
	store := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	sess, err := store.New(httptest.NewRequest(http.MethodGet, "/", nil), DefaultSessionName)
	require.NoError(t, err)

	flash(sess, "success", "Saved.")
	sess.AddFlash("not a flash message")

	assert.Equal(t, []FlashMessage{{Type: "success", Message: "Saved."}}, GetFlash(sess))
	assert.Empty(t, GetFlash(sess))
}
