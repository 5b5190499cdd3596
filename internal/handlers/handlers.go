package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/Codingworld786/ecommerce-fullstack/internal/session"
	"github.com/Codingworld786/ecommerce-fullstack/internal/shop"
)

const DefaultSessionName = "storefront-session"

// ShopHandler binds the storefront operations to HTTP. The visitor record
// lives in the session; every request loads it, runs one shop operation and
// saves it back before responding.
type ShopHandler struct {
	Shop         *shop.Shop
	Templates    *TemplateCache
	SessionStore sessions.Store
	SessionName  string
}

func (h *ShopHandler) sessionName() string {
	if h.SessionName == "" {
		return DefaultSessionName
	}
	return h.SessionName
}

// open loads the visitor session and record. An unreadable cookie yields a
// fresh session rather than an error page.
func (h *ShopHandler) open(r *http.Request) (*sessions.Session, *shop.Record) {
	sess, err := h.SessionStore.Get(r, h.sessionName())
	if err != nil {
		slog.Warn("Starting a fresh session", "error", err)
	}
	if sess == nil {
		sess = sessions.NewSession(h.SessionStore, h.sessionName())
		sess.IsNew = true
	}
	return sess, session.Decode(sess.Values)
}

// save writes the record back into the session. On failure it has already
// answered with a 500 and returns false.
func (h *ShopHandler) save(w http.ResponseWriter, r *http.Request, sess *sessions.Session, rec *shop.Record) bool {
	if err := session.Encode(rec, sess.Values); err != nil {
		slog.Error("Failed to encode session record", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return false
	}
	if err := sess.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return false
	}
	return true
}

// redirect saves and then sends a 303 to target.
func (h *ShopHandler) redirect(w http.ResponseWriter, r *http.Request, sess *sessions.Session, rec *shop.Record, target string) {
	if h.save(w, r, sess, rec) {
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// viewData carries what every page needs next to its own fields. Reading
// flashes consumes them, so it must run before save.
func (h *ShopHandler) viewData(r *http.Request, sess *sessions.Session, rec *shop.Record) map[string]interface{} {
	return map[string]interface{}{
		"CartCount":   h.Shop.CartCount(rec),
		"WishlistIDs": shop.WishlistSet(rec),
		"Flashes":     GetFlash(sess),
		"CsrfField":   csrf.TemplateField(r),
		"Path":        r.URL.RequestURI(),
		"Query":       r.URL.Query().Get("q"),
	}
}

// render saves the session, then executes the page.
func (h *ShopHandler) render(w http.ResponseWriter, r *http.Request, sess *sessions.Session, rec *shop.Record, page string, data map[string]interface{}) {
	if !h.save(w, r, sess, rec) {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Templates.Render(w, page, data); err != nil {
		slog.Error("Failed to render template", "template", page, "error", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

func flash(sess *sessions.Session, kind, msg string) {
	sess.AddFlash(FlashMessage{Type: kind, Message: msg})
}

// flashError records a shop error as a user notice: NotFound as an error,
// missing prerequisites as a warning.
func flashError(sess *sessions.Session, err error) {
	var se *shop.Error
	if !errors.As(err, &se) {
		flash(sess, "error", "Something went wrong. Please try again.")
		return
	}
	kind := "error"
	if se.Code == shop.CodePrerequisiteMissing {
		kind = "warning"
	}
	flash(sess, kind, se.Message)
}

// productID reads the {id} path value. Anything unparsable is treated as an
// id that resolves to nothing.
func productID(r *http.Request) int {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0
	}
	return id
}

// nextURL picks the post-action destination: form "next", then Referer, then
// "/". Only same-site paths are honoured.
func nextURL(r *http.Request) string {
	if next := r.FormValue("next"); isLocalPath(next) {
		return next
	}
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Host == r.Host && isLocalPath(ref.Path) {
		return ref.RequestURI()
	}
	return "/"
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}
