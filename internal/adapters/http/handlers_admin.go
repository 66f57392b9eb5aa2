package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	"naphtha/internal/adapters/http/middleware"
	"naphtha/internal/application/orchestrators"
	"naphtha/internal/application/projections"
)

const (
	msgIncorrectPassword = "Incorrect password."
	msgFormExpired       = "Your login form expired. Please try again."
)

// handleLogin handles GET (form) and POST (authenticate) for /admin/login
func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.renderTemplate(w, http.StatusOK, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.AdminLoginInput{Password: r.PostFormValue("password")}
	deps := orchestrators.AdminLoginDeps{AdminPassword: s.cfg.AdminPassword}

	if err := orchestrators.ExecuteAdminLogin(r.Context(), input, deps); err != nil {
		if !errors.Is(err, orchestrators.ErrIncorrectPassword) {
			s.internalError(w, r, err)
			return
		}
		s.renderTemplate(w, http.StatusOK, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Error":     msgIncorrectPassword,
		})
		return
	}

	if err := s.sessions.SetAdmin(w, r); err != nil {
		s.internalError(w, r, err)
		return
	}
	http.Redirect(w, r, middleware.AdminPrefix, http.StatusFound)
}

// handleLogout handles GET /admin/logout
// POST: the session flag is cleared whether or not it was set
func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.ClearAdmin(w, r); err != nil {
		s.internalError(w, r, err)
		return
	}
	http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
}

// handleAdmin renders every submission, newest first (GET /admin)
// PRE: RequireAdmin has admitted the request
func (s *server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetSubmissions(r.Context(), projections.GetSubmissionsDeps{
		ContactStore: s.deps.ContactStore,
		OrderStore:   s.deps.OrderStore,
	})
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.renderTemplate(w, http.StatusOK, "admin.html", result)
}

// handleCSRFFailure re-renders the login form with a fresh token when an admin
// post carries a missing or stale CSRF token.
// POST: 403 with the styled login form; no session is granted
func (s *server) handleCSRFFailure(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Info("auth_event", "event", "csrf_rejected", "path", r.URL.Path, "reason", reason)
	s.renderTemplate(w, http.StatusForbidden, "login.html", map[string]any{
		"CSRFToken": csrf.Token(r),
		"Error":     msgFormExpired,
	})
}
