package orchestrators

import (
	"context"
	"log/slog"
)

// SessionSinkForLogout defines the session surface needed by Logout.
type SessionSinkForLogout interface {
	Logout(ctx context.Context) error
}

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Sessions SessionSinkForLogout
}

// ExecuteLogout ends the session. Idempotent: logging out while
// anonymous succeeds quietly.
// POST: No session is current, persisted credentials are wiped, and
// the route gate will bounce protected paths on the next navigation
func ExecuteLogout(ctx context.Context, deps LogoutDeps) error {
	if err := deps.Sessions.Logout(ctx); err != nil {
		slog.Warn("auth_event", "event", "logout_failed", "error", err)
		return err
	}
	return nil
}
