// Package middleware carries the HTTP cross-cutting concerns: the session
// guard for protected pages and request metrics.
package middleware

import (
	"net/http"
	"net/url"

	"github.com/eveplan/eveweb/internal/session"
)

// ReturnToParam carries the pre-failure location through the login redirect
// so the user lands back where they were.
const ReturnToParam = "return_to"

// SessionGuard redirects anonymous visitors to the login page.
type SessionGuard struct {
	store *session.Store
}

func NewSessionGuard(store *session.Store) *SessionGuard {
	return &SessionGuard{store: store}
}

// RequireSession wraps a handler so only authenticated visitors reach it.
func (g *SessionGuard) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.store.Authenticated() {
			RedirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectToLogin sends the browser to the login page, carrying the current
// location for the post-login return.
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login"
	if loc := r.URL.RequestURI(); loc != "" && loc != "/" && loc != "/login" {
		target += "?" + ReturnToParam + "=" + url.QueryEscape(loc)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
