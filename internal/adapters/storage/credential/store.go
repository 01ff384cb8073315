package credential

import (
	"context"
	"errors"

	"github.com/zobayerlabib/edumate/internal/domain/session"
)

// Fixed storage keys. These are the names the persisted token and
// identity live under across restarts; nothing else is ever persisted.
const (
	TokenKey    = "edumate_token"
	IdentityKey = "edumate_user"
)

// ErrNotFound is returned by Load when no credential pair is persisted.
var ErrNotFound = errors.New("no persisted credentials")

// Store persists the bearer token and identity across restarts.
// It carries no logic beyond get/set/clear; the Session Manager is the
// only caller that may write through it.
type Store interface {
	// Load returns the persisted session, or ErrNotFound when either
	// half of the credential pair is missing.
	Load(ctx context.Context) (session.Session, error)
	// Save persists both fields atomically.
	Save(ctx context.Context, sess session.Session) error
	// Clear removes both fields. Idempotent.
	Clear(ctx context.Context) error
}
