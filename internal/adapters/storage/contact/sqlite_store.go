package contact

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

// Insert appends one row to contact_submissions.
// PRE: c has been validated; c.SubmittedAt was set by the server
// POST: one row inserted; returns its id
func (s *sqliteStore) Insert(ctx context.Context, c domain.Contact) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_submissions
			(submitted_at, firstname, lastname, email, phone, message, page_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		domain.FormatTimestamp(c.SubmittedAt),
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.Message,
		storage.NullString(c.PageURL),
	)
	if err != nil {
		return 0, fmt.Errorf("contact insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("contact insert id: %w", err)
	}
	return id, nil
}

// ListAll returns every contact submission, newest first.
// PRE: none
// POST: rows ordered by submitted_at DESC; id DESC breaks same-second ties
func (s *sqliteStore) ListAll(ctx context.Context) ([]domain.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, submitted_at, firstname, lastname, email, phone, message, COALESCE(page_url, '')
		FROM contact_submissions
		ORDER BY submitted_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("contact list: %w", err)
	}
	defer rows.Close()

	var list []domain.Contact
	for rows.Next() {
		var c domain.Contact
		var submittedAt string
		if err := rows.Scan(&c.ID, &submittedAt, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Message, &c.PageURL); err != nil {
			return nil, fmt.Errorf("contact scan: %w", err)
		}
		if c.SubmittedAt, err = domain.ParseTimestamp(submittedAt); err != nil {
			return nil, fmt.Errorf("contact %d: %w", c.ID, err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Count returns the number of contact submissions.
func (s *sqliteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_submissions").Scan(&n); err != nil {
		return 0, fmt.Errorf("contact count: %w", err)
	}
	return n, nil
}
