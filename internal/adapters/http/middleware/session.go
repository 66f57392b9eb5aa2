package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName   = "naphtha_admin"
	authenticated = "admin_logged_in"
)

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = AdminPrefix + "/login"

// AdminSessions keeps the single "authenticated" flag in a signed client-side
// cookie, so no server-side session storage exists. The cookie lives for the
// browser session; the signature also expires it after 30 days.
type AdminSessions struct {
	store *sessions.CookieStore
}

// NewAdminSessions creates a cookie-backed session store signed with key.
// PRE: key is non-empty
// POST: cookies are HttpOnly, SameSite=Lax, path /, Secure when secure is set
func NewAdminSessions(key []byte, secure bool) *AdminSessions {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &AdminSessions{store: store}
}

// IsAdmin reports whether the request carries a valid session with the flag set.
// A tampered or expired cookie reads as logged out.
func (a *AdminSessions) IsAdmin(r *http.Request) bool {
	sess, err := a.store.Get(r, sessionName)
	if err != nil {
		return false
	}
	ok, _ := sess.Values[authenticated].(bool)
	return ok
}

// SetAdmin marks the browser session as authenticated.
// PRE: the password check has passed
// POST: a signed cookie carrying the flag is written to w
func (a *AdminSessions) SetAdmin(w http.ResponseWriter, r *http.Request) error {
	sess, _ := a.store.Get(r, sessionName)
	sess.Values[authenticated] = true
	return sess.Save(r, w)
}

// ClearAdmin removes the flag from the session.
// POST: subsequent requests with the returned cookie are logged out
func (a *AdminSessions) ClearAdmin(w http.ResponseWriter, r *http.Request) error {
	sess, _ := a.store.Get(r, sessionName)
	delete(sess.Values, authenticated)
	return sess.Save(r, w)
}

// RequireAdmin redirects requests without an admin session to the login form.
func (a *AdminSessions) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.IsAdmin(r) {
			slog.Debug("admin_redirect_login", "path", r.URL.Path)
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
