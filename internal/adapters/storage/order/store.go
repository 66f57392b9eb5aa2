package order

import (
	"context"

	domain "naphtha/internal/domain/submission"
)

// Store persists order requests. Rows are append-only: there is no update or delete.
type Store interface {
	Insert(ctx context.Context, o domain.Order) (int64, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	Count(ctx context.Context) (int, error)
}
