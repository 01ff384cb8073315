// Package storage provides the sqlite-backed client-local state. The
// only thing the client persists across restarts is the credential
// pair (bearer token and identity); everything else is fetched fresh.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by the stores. *sql.DB
// satisfies it; tests may substitute a wrapper.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// InitDB initializes the client state schema.
// PRE: db is a valid database connection
// POST: The credential table exists
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS credential (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
