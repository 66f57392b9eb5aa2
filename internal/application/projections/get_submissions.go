package projections

import (
	"context"
	"fmt"

	domain "naphtha/internal/domain/submission"
)

// ContactLister lists contact submissions newest first.
type ContactLister interface {
	ListAll(ctx context.Context) ([]domain.Contact, error)
}

// OrderLister lists order submissions newest first.
type OrderLister interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
}

// GetSubmissionsDeps holds dependencies for the admin listing.
type GetSubmissionsDeps struct {
	ContactStore ContactLister
	OrderStore   OrderLister
}

// SubmissionsResult is the full history rendered on the admin page.
type SubmissionsResult struct {
	Contacts []domain.Contact
	Orders   []domain.Order
}

// QueryGetSubmissions fetches every contact and order submission. No pagination.
// PRE: none
// POST: both lists are ordered newest first; read-only
func QueryGetSubmissions(ctx context.Context, deps GetSubmissionsDeps) (SubmissionsResult, error) {
	contacts, err := deps.ContactStore.ListAll(ctx)
	if err != nil {
		return SubmissionsResult{}, fmt.Errorf("list contacts: %w", err)
	}
	orders, err := deps.OrderStore.ListAll(ctx)
	if err != nil {
		return SubmissionsResult{}, fmt.Errorf("list orders: %w", err)
	}
	return SubmissionsResult{Contacts: contacts, Orders: orders}, nil
}
