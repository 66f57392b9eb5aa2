package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	domain "naphtha/internal/domain/submission"
)

// MemoryPath opens a private in-memory database. Used by tests.
const MemoryPath = ":memory:"

// Open opens the submissions database with WAL mode and a busy timeout so concurrent
// workers serialise on the SQLite write lock instead of failing.
// PRE: path is a file path or MemoryPath
// POST: returns a pinged *sql.DB; in-memory databases are limited to one connection
func Open(path string) (*sql.DB, error) {
	dsn := path
	if path != MemoryPath {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == MemoryPath {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS contact_submissions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	submitted_at TEXT    NOT NULL,
	firstname    TEXT    NOT NULL,
	lastname     TEXT    NOT NULL,
	email        TEXT    NOT NULL,
	phone        TEXT    NOT NULL,
	message      TEXT    NOT NULL,
	page_url     TEXT
);

CREATE TABLE IF NOT EXISTS order_submissions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	submitted_at TEXT    NOT NULL,
	firstname    TEXT    NOT NULL,
	lastname     TEXT    NOT NULL,
	email        TEXT    NOT NULL,
	phone        TEXT    NOT NULL,
	postcode     TEXT,
	message      TEXT    NOT NULL,
	page_url     TEXT
);
`

// column is a nullable column that may be missing from databases created by an
// older release.
type column struct {
	table string
	name  string
	decl  string
}

// additiveColumns lists columns added after the first release. Only nullable
// columns belong here: ALTER TABLE ADD COLUMN cannot backfill NOT NULL values.
var additiveColumns = []column{
	{domain.KindContact.Table(), "page_url", "TEXT"},
	{domain.KindOrder.Table(), "postcode", "TEXT"},
	{domain.KindOrder.Table(), "page_url", "TEXT"},
}

// EnsureSchema creates both submission tables when absent and adds any missing
// nullable columns to tables that already exist. It never drops or renames.
// PRE: db is a valid connection
// POST: both tables exist with every column in additiveColumns; safe to run on every start
func EnsureSchema(ctx context.Context, db SQLDB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	for _, c := range additiveColumns {
		have, err := columnNames(ctx, db, c.table)
		if err != nil {
			return err
		}
		if have[c.name] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.table, c.name, c.decl)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to add %s.%s: %w", c.table, c.name, err)
		}
		slog.Info("schema_column_added", "table", c.table, "column", c.name)
	}
	return nil
}

// columnNames returns the set of column names of table.
func columnNames(ctx context.Context, db SQLDB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		names[name] = true
	}
	return names, rows.Err()
}

// NullString maps an empty optional field to SQL NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
