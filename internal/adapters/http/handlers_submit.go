package web

import (
	"errors"
	"mime"
	"net/http"

	"naphtha/internal/application/orchestrators"
	"naphtha/internal/domain/submission"
)

const (
	// maxFormBytes caps an intake body; the forms are a handful of short fields.
	maxFormBytes = 64 << 10

	msgThanks         = "Thanks! We'll be in touch shortly."
	msgFieldsRequired = "All fields are required."
)

// handlePreflight answers the CORS preflight for the intake endpoints.
// The CORS middleware has already set the Access-Control-* headers.
func (s *server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "OPTIONS, POST")
	w.WriteHeader(http.StatusOK)
}

// handleSubmitContact handles POST /submit/contact
// PRE: body is urlencoded or multipart form data
// POST: 200 {"ok":true} with one new row, 400 {"ok":false} with none, or the 500 page
func (s *server) handleSubmitContact(w http.ResponseWriter, r *http.Request) {
	if !parseSubmitForm(w, r) {
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: msgFieldsRequired})
		return
	}

	input := orchestrators.ContactInput{
		FirstName: r.PostFormValue("firstname"),
		LastName:  r.PostFormValue("lastname"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("mobilephone"),
		Message:   r.PostFormValue("message"),
		PageURL:   r.PostFormValue("page_url"),
	}
	deps := orchestrators.SubmitContactDeps{
		ContactStore: s.deps.ContactStore,
		Now:          s.now,
	}

	_, err := orchestrators.ExecuteSubmitContact(r.Context(), input, deps)
	s.respondSubmit(w, r, err)
}

// handleSubmitOrder handles POST /submit/order
// PRE: body is urlencoded or multipart form data
// POST: 200 {"ok":true} with one new row, 400 {"ok":false} with none, or the 500 page
func (s *server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	if !parseSubmitForm(w, r) {
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: msgFieldsRequired})
		return
	}

	input := orchestrators.OrderInput{
		FirstName: r.PostFormValue("firstname"),
		LastName:  r.PostFormValue("lastname"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("phone"),
		Postcode:  r.PostFormValue("postcode"),
		Message:   r.PostFormValue("message"),
		PageURL:   r.PostFormValue("page_url"),
	}
	deps := orchestrators.SubmitOrderDeps{
		OrderStore: s.deps.OrderStore,
		Now:        s.now,
	}

	_, err := orchestrators.ExecuteSubmitOrder(r.Context(), input, deps)
	s.respondSubmit(w, r, err)
}

func (s *server) respondSubmit(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, submitResponse{OK: true, Message: msgThanks})
	case errors.Is(err, submission.ErrMissingField):
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: msgFieldsRequired})
	default:
		s.internalError(w, r, err)
	}
}

// parseSubmitForm reads the body as multipart or urlencoded form data.
// An unreadable or oversized body reports false.
func parseSubmitForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxFormBytes) == nil
	}
	return r.ParseForm() == nil
}
