package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"naphtha/internal/domain/submission"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() *template.Template {
	funcs := template.FuncMap{
		"timestamp": submission.FormatTimestamp,
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// errorPage is the fixed copy shown for a status code.
type errorPage struct {
	Title   string
	Message string
}

var errorPages = map[int]errorPage{
	http.StatusNotFound: {
		Title:   "Page Not Found",
		Message: "Sorry, the page you were looking for at this URL was not found.",
	},
	http.StatusInternalServerError: {
		Title:   "Server Error",
		Message: "Something went wrong on our end. Please try again in a moment.",
	},
}

// renderTemplate executes name into a buffer first so a template failure can
// still become a clean 500.
func (s *server) renderTemplate(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("template_error", "template", name, "error", err.Error())
		if name != "error.html" {
			s.renderError(w, http.StatusInternalServerError)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderError renders the styled error page for status. Only fixed copy is shown.
func (s *server) renderError(w http.ResponseWriter, status int) {
	page, ok := errorPages[status]
	if !ok {
		status = http.StatusInternalServerError
		page = errorPages[status]
	}
	s.renderTemplate(w, status, "error.html", map[string]any{
		"Code":    status,
		"Title":   page.Title,
		"Message": page.Message,
	})
}

func (s *server) renderServerError(w http.ResponseWriter, _ *http.Request) {
	s.renderError(w, http.StatusInternalServerError)
}

// internalError logs the real error and shows the generic 500 page.
func (s *server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal_error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	s.renderError(w, http.StatusInternalServerError)
}

// submitResponse is the JSON body returned by the intake endpoints.
type submitResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body submitResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("json_encode_failed", "error", err.Error())
	}
}
