package contact

import (
	"context"

	domain "naphtha/internal/domain/submission"
)

// Store persists contact enquiries. Rows are append-only: there is no update or delete.
type Store interface {
	Insert(ctx context.Context, c domain.Contact) (int64, error)
	ListAll(ctx context.Context) ([]domain.Contact, error)
	Count(ctx context.Context) (int, error)
}
