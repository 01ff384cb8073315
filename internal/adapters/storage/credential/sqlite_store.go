package credential

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/zobayerlabib/edumate/internal/adapters/storage"
	"github.com/zobayerlabib/edumate/internal/domain/session"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new credential store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// storedIdentity is the persisted identity shape under IdentityKey.
type storedIdentity struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Load retrieves the persisted credential pair.
// PRE: none
// POST: Returns a session satisfying Validate, or ErrNotFound
// INVARIANT: Store state is not mutated
func (s *SQLiteStore) Load(ctx context.Context) (session.Session, error) {
	token, err := s.get(ctx, TokenKey)
	if err != nil {
		return session.Session{}, err
	}
	raw, err := s.get(ctx, IdentityKey)
	if err != nil {
		return session.Session{}, err
	}

	var ident storedIdentity
	if err := json.Unmarshal([]byte(raw), &ident); err != nil {
		return session.Session{}, fmt.Errorf("decode persisted identity: %w", err)
	}

	sess, err := session.New(token, session.Identity{Email: ident.Email, Role: ident.Role})
	if err != nil {
		return session.Session{}, fmt.Errorf("persisted credentials invalid: %w", err)
	}
	return sess, nil
}

// Save persists both credential fields.
// PRE: sess is authenticated and validates
// POST: Token and identity are stored under their fixed keys
func (s *SQLiteStore) Save(ctx context.Context, sess session.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	if !sess.IsAuthenticated() {
		return session.ErrEmptyToken
	}

	raw, err := json.Marshal(storedIdentity{
		Email: sess.Identity.Email,
		Role:  sess.Identity.Role,
	})
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	if err := s.set(ctx, TokenKey, sess.Token); err != nil {
		return err
	}
	return s.set(ctx, IdentityKey, string(raw))
}

// Clear removes both credential fields.
// POST: Load returns ErrNotFound; clearing an empty store is a no-op
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM credential WHERE key IN (?, ?)
	`, TokenKey, IdentityKey)
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, key string) (string, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT value FROM credential WHERE key = ?
	`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credential (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save credential %s: %w", key, err)
	}
	return nil
}
