package order

import (
	"context"
	"fmt"

	storage "naphtha/internal/adapters/storage"
	domain "naphtha/internal/domain/submission"
)

type sqliteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore returns a Store backed by SQLite.
func NewSQLiteStore(db storage.SQLDB) Store {
	return &sqliteStore{db: db}
}

// Insert appends one row to order_submissions.
// PRE: o has been validated; o.SubmittedAt was set by the server
// POST: one row inserted with NULL postcode/page_url when blank; returns its id
func (s *sqliteStore) Insert(ctx context.Context, o domain.Order) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO order_submissions
			(submitted_at, firstname, lastname, email, phone, postcode, message, page_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		domain.FormatTimestamp(o.SubmittedAt),
		o.FirstName,
		o.LastName,
		o.Email,
		o.Phone,
		storage.NullString(o.Postcode),
		o.Message,
		storage.NullString(o.PageURL),
	)
	if err != nil {
		return 0, fmt.Errorf("order insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("order insert id: %w", err)
	}
	return id, nil
}

// ListAll returns every order submission, newest first.
// PRE: none
// POST: rows ordered by submitted_at DESC; id DESC breaks same-second ties
func (s *sqliteStore) ListAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, submitted_at, firstname, lastname, email, phone,
		       COALESCE(postcode, ''), message, COALESCE(page_url, '')
		FROM order_submissions
		ORDER BY submitted_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("order list: %w", err)
	}
	defer rows.Close()

	var list []domain.Order
	for rows.Next() {
		var o domain.Order
		var submittedAt string
		err := rows.Scan(&o.ID, &submittedAt, &o.FirstName, &o.LastName, &o.Email, &o.Phone,
			&o.Postcode, &o.Message, &o.PageURL)
		if err != nil {
			return nil, fmt.Errorf("order scan: %w", err)
		}
		if o.SubmittedAt, err = domain.ParseTimestamp(submittedAt); err != nil {
			return nil, fmt.Errorf("order %d: %w", o.ID, err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Count returns the number of order submissions.
func (s *sqliteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM order_submissions").Scan(&n); err != nil {
		return 0, fmt.Errorf("order count: %w", err)
	}
	return n, nil
}
