package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domain "naphtha/internal/domain/submission"
)

// ContactStoreForSubmit defines the store interface needed by SubmitContact.
type ContactStoreForSubmit interface {
	Insert(ctx context.Context, c domain.Contact) (int64, error)
}

// ContactInput carries the posted contact form. Phone arrives as "mobilephone".
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
	PageURL   string
}

// SubmitContactDeps holds dependencies for SubmitContact.
type SubmitContactDeps struct {
	ContactStore ContactStoreForSubmit
	Now          func() time.Time
}

// ExecuteSubmitContact validates a contact enquiry and appends it.
// PRE: none; input comes straight from the form
// POST: on success exactly one row is inserted and its id returned;
// on a blank required field the error wraps submission.ErrMissingField and nothing is written
func ExecuteSubmitContact(ctx context.Context, input ContactInput, deps SubmitContactDeps) (int64, error) {
	c := domain.NewContact(domain.Fields{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   input.Message,
		PageURL:   input.PageURL,
	}, clock(deps.Now)())

	if err := c.Validate(); err != nil {
		slog.Info("submission_rejected", "kind", domain.KindContact, "reason", err.Error())
		return 0, fmt.Errorf("validation: %w", err)
	}

	id, err := deps.ContactStore.Insert(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("failed to save contact submission: %w", err)
	}

	slog.Info("submission_received", "kind", domain.KindContact, "id", id, "page_url", c.PageURL)
	return id, nil
}

// clock falls back to the wall clock when no Now is injected.
func clock(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
