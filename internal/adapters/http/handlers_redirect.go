package web

import (
	"log/slog"
	"net/http"
)

// handleFallback serves every path no other route claims.
// GET / has no page of its own and gets the styled 404. Any other path is
// looked up in the legacy redirect table: a hit is a 301, a miss is a bare 404.
func (s *server) handleFallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if r.URL.Path == "/" {
		s.renderError(w, http.StatusNotFound)
		return
	}

	target, ok := s.deps.Redirects.Resolve(r.URL.Path)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	slog.Debug("legacy_redirect", "from", r.URL.Path, "to", target)
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}
