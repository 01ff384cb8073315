package orchestrators

import (
	"context"

	"github.com/zobayerlabib/edumate/internal/domain/route"
	"github.com/zobayerlabib/edumate/internal/domain/session"
)

// SessionSourceForRestore defines the session surface needed by Restore.
type SessionSourceForRestore interface {
	Restore(ctx context.Context) (session.Session, error)
}

// RestoreInput carries input for the startup-restore orchestrator.
type RestoreInput struct {
	// RequestedPath is where the client wants to land on startup.
	RequestedPath string
	// AllowedRoles are the roles the requested path admits; empty
	// admits any authenticated session.
	AllowedRoles []string
}

// RestoreResult carries the restored session and the gate's verdict
// for the requested path.
type RestoreResult struct {
	Session  session.Session
	Decision route.Decision
}

// RestoreDeps holds dependencies for Restore.
type RestoreDeps struct {
	Sessions SessionSourceForRestore
}

// ExecuteRestore loads persisted credentials and gates the requested
// path against whatever came back. The restore is optimistic; a token
// the backend has since revoked surfaces as a 401 on the first fetch,
// which invalidates the session and re-runs this gate.
// POST: Decision reflects the restored session, never pre-restore state
func ExecuteRestore(ctx context.Context, input RestoreInput, deps RestoreDeps) (RestoreResult, error) {
	s, err := deps.Sessions.Restore(ctx)
	if err != nil {
		return RestoreResult{}, err
	}
	return RestoreResult{
		Session:  s,
		Decision: route.Decide(s, input.AllowedRoles, input.RequestedPath),
	}, nil
}
