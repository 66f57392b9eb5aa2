package web

import (
	"html/template"
	"net/http"
	"time"

	"naphtha/internal/adapters/http/middleware"
	contactStore "naphtha/internal/adapters/storage/contact"
	orderStore "naphtha/internal/adapters/storage/order"
	"naphtha/internal/config"
	"naphtha/internal/domain/redirect"
)

// Deps holds everything the handlers need besides configuration.
type Deps struct {
	ContactStore contactStore.Store
	OrderStore   orderStore.Store
	Redirects    redirect.Table
	Now          func() time.Time // nil uses time.Now
}

// server carries per-process state explicitly; there are no package globals.
type server struct {
	cfg       config.Config
	deps      Deps
	sessions  *middleware.AdminSessions
	templates *template.Template
}

func newServer(cfg config.Config, deps Deps) *server {
	if deps.Redirects == nil {
		deps.Redirects = redirect.DefaultTable()
	}
	return &server{
		cfg:       cfg,
		deps:      deps,
		sessions:  middleware.NewAdminSessions(cfg.SessionKey(), cfg.CookieSecure),
		templates: parseTemplates(),
	}
}

// NewMux wires HTTP handlers for the app.
func NewMux(cfg config.Config, deps Deps) http.Handler {
	s := newServer(cfg, deps)

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	// Timing -> Recover -> CORS -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(cfg.CSRFKey(), cfg.CookieSecure, http.HandlerFunc(s.handleCSRFFailure)),
		middleware.CORS(cfg.AllowedOrigin),
		middleware.Recover(s.renderServerError),
		middleware.Timing(nil, middleware.SlowRequestThreshold()),
	)
}

func (s *server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("OPTIONS /submit/contact", s.handlePreflight)
	mux.HandleFunc("OPTIONS /submit/order", s.handlePreflight)
	mux.HandleFunc("POST /submit/contact", s.handleSubmitContact)
	mux.HandleFunc("POST /submit/order", s.handleSubmitOrder)

	mux.HandleFunc("GET /admin/login", s.handleLogin)
	mux.HandleFunc("POST /admin/login", s.handleLogin)
	mux.HandleFunc("GET /admin/logout", s.handleLogout)
	mux.Handle("GET /admin", s.sessions.RequireAdmin(http.HandlerFunc(s.handleAdmin)))

	// Everything else goes through the legacy redirect table first.
	mux.HandleFunc("/", s.handleFallback)
}

func (s *server) now() time.Time {
	if s.deps.Now != nil {
		return s.deps.Now()
	}
	return time.Now()
}
