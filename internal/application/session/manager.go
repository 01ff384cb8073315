// Package session holds the client's authoritative in-memory session
// state. Persisted credentials are only a bootstrap hint; after
// Restore, every authorization decision reads the Manager, and a
// backend 401 flows back in through Invalidate so the gate re-runs on
// the next navigation instead of trusting stale state.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zobayerlabib/edumate/internal/adapters/storage/credential"
	sess "github.com/zobayerlabib/edumate/internal/domain/session"
)

// Manager owns the current session. All methods are safe for
// concurrent use; background fetches read the token while the event
// loop logs in or out.
type Manager struct {
	mu    sync.Mutex
	cur   sess.Session
	store credential.Store
}

// NewManager creates a Manager backed by the given credential store.
func NewManager(store credential.Store) *Manager {
	return &Manager{store: store}
}

// Restore loads persisted credentials into memory at startup.
// Restoration is optimistic: a stored token is trusted without a
// network round-trip, except when the token itself carries an already
// past expiry, in which case the credentials are dropped eagerly.
// POST: Current() reflects the stored session, or the anonymous
// session when nothing usable was stored
func (m *Manager) Restore(ctx context.Context) (sess.Session, error) {
	stored, err := m.store.Load(ctx)
	if err == credential.ErrNotFound {
		slog.Info("auth_event", "event", "restore_empty")
		return sess.Session{}, nil
	}
	if err != nil {
		return sess.Session{}, err
	}

	if tokenExpired(stored.Token, time.Now()) {
		slog.Info("auth_event", "event", "restore_expired", "email", stored.Identity.Email)
		_ = m.store.Clear(ctx)
		return sess.Session{}, nil
	}

	m.mu.Lock()
	m.cur = stored
	m.mu.Unlock()

	slog.Info("auth_event", "event", "restore_success", "email", stored.Identity.Email, "role", stored.Identity.Role)
	return stored, nil
}

// Login installs a freshly authenticated session and persists it.
// Token and identity are committed together; a partial write never
// becomes the current session.
func (m *Manager) Login(ctx context.Context, s sess.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}

	m.mu.Lock()
	m.cur = s
	m.mu.Unlock()

	slog.Info("auth_event", "event", "login_success", "email", s.Identity.Email, "role", s.Identity.Role)
	return nil
}

// Logout clears the session in memory and in the store. Idempotent:
// logging out while anonymous is a no-op, not an error.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	wasAuthed := m.cur.IsAuthenticated()
	m.cur = sess.Session{}
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	if wasAuthed {
		slog.Info("auth_event", "event", "logout")
	}
	return nil
}

// Invalidate drops the session after the backend rejected its token.
// It is wired as the API client's unauthorized hook, so it takes no
// context; the store wipe is best-effort with its own short deadline.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.cur = sess.Session{}
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.store.Clear(ctx); err != nil {
		slog.Warn("auth_event", "event", "invalidate_clear_failed", "error", err)
	}
	slog.Info("auth_event", "event", "session_invalidated")
}

// Current returns the session as of now.
func (m *Manager) Current() sess.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.Current().IsAuthenticated()
}

// Token returns the current bearer token, empty when anonymous. This
// satisfies the API client's TokenSource.
func (m *Manager) Token() string {
	return m.Current().Token
}

// tokenExpired reports whether the token is a JWT whose exp claim is
// already past. Opaque tokens and claims without exp are treated as
// live; the backend stays the authority and a 401 will catch those.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
