package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "naphtha/internal/domain/submission"
)

type stubContacts struct {
	rows []domain.Contact
	err  error
}

// ListAll implements ContactLister.
func (s stubContacts) ListAll(context.Context) ([]domain.Contact, error) { return s.rows, s.err }

type stubOrders struct {
	rows []domain.Order
	err  error
}

// ListAll implements OrderLister.
func (s stubOrders) ListAll(context.Context) ([]domain.Order, error) { return s.rows, s.err }

// TestQueryGetSubmissions_ReturnsBothLists passes store order through untouched.
func TestQueryGetSubmissions_ReturnsBothLists(t *testing.T) {
	now := time.Now().UTC()
	deps := GetSubmissionsDeps{
		ContactStore: stubContacts{rows: []domain.Contact{{ID: 2, SubmittedAt: now}, {ID: 1, SubmittedAt: now.Add(-time.Hour)}}},
		OrderStore:   stubOrders{rows: []domain.Order{{ID: 7}}},
	}
	got, err := QueryGetSubmissions(context.Background(), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Contacts) != 2 || got.Contacts[0].ID != 2 {
		t.Errorf("contacts = %+v", got.Contacts)
	}
	if len(got.Orders) != 1 {
		t.Errorf("orders = %+v", got.Orders)
	}
}

// TestQueryGetSubmissions_PropagatesErrors wraps store failures.
func TestQueryGetSubmissions_PropagatesErrors(t *testing.T) {
	boom := errors.New("locked")
	_, err := QueryGetSubmissions(context.Background(), GetSubmissionsDeps{
		ContactStore: stubContacts{},
		OrderStore:   stubOrders{err: boom},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped locked", err)
	}
}
