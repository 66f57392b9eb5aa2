package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// withCookies copies the Set-Cookie headers from rec onto a new request.
func withCookies(rec *httptest.ResponseRecorder, method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

// TestAdminSessions_LoginLogoutCycle walks LoggedOut -> LoggedIn -> LoggedOut.
func TestAdminSessions_LoginLogoutCycle(t *testing.T) {
	s := NewAdminSessions([]byte("test-session-key"), false)

	if s.IsAdmin(httptest.NewRequest("GET", "/admin", nil)) {
		t.Fatal("fresh request should be logged out")
	}

	login := httptest.NewRecorder()
	if err := s.SetAdmin(login, httptest.NewRequest("POST", "/admin/login", nil)); err != nil {
		t.Fatalf("SetAdmin: %v", err)
	}
	cookies := login.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %+v, want one HttpOnly cookie", cookies)
	}
	if !s.IsAdmin(withCookies(login, "GET", "/admin")) {
		t.Fatal("cookie from SetAdmin should authenticate")
	}

	logout := httptest.NewRecorder()
	if err := s.ClearAdmin(logout, withCookies(login, "GET", "/admin/logout")); err != nil {
		t.Fatalf("ClearAdmin: %v", err)
	}
	if s.IsAdmin(withCookies(logout, "GET", "/admin")) {
		t.Fatal("cookie from ClearAdmin should be logged out")
	}
}

// TestAdminSessions_RejectsForeignSignature ignores cookies signed with another key.
func TestAdminSessions_RejectsForeignSignature(t *testing.T) {
	other := NewAdminSessions([]byte("someone-elses-key"), false)
	rec := httptest.NewRecorder()
	other.SetAdmin(rec, httptest.NewRequest("POST", "/admin/login", nil))

	s := NewAdminSessions([]byte("test-session-key"), false)
	if s.IsAdmin(withCookies(rec, "GET", "/admin")) {
		t.Fatal("foreign cookie must not authenticate")
	}
}

// TestRequireAdmin_RedirectsToLogin guards the listing.
func TestRequireAdmin_RedirectsToLogin(t *testing.T) {
	s := NewAdminSessions([]byte("test-session-key"), false)
	called := false
	h := s.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/admin", nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != LoginPath {
		t.Fatalf("status=%d location=%q, want 302 to %s", rec.Code, rec.Header().Get("Location"), LoginPath)
	}
	if called {
		t.Fatal("guarded handler ran without a session")
	}

	login := httptest.NewRecorder()
	s.SetAdmin(login, httptest.NewRequest("POST", "/admin/login", nil))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, withCookies(login, "GET", "/admin"))
	if !called {
		t.Fatal("guarded handler should run with a session")
	}
}
