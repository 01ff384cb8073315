package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"github.com/zobayerlabib/edumate/internal/domain/session"
)

// AdminAPIForChangeRole defines the backend surface needed by ChangeUserRole.
type AdminAPIForChangeRole interface {
	ChangeUserRole(ctx context.Context, userID int64, role string) error
}

// ChangeUserRoleInput carries the role reassignment.
type ChangeUserRoleInput struct {
	UserID int64
	Role   string
	// ActorEmail is the admin performing the change, for the audit log
	// and the self-demotion guard.
	ActorEmail  string
	TargetEmail string
}

// ChangeUserRoleDeps holds dependencies for ChangeUserRole.
type ChangeUserRoleDeps struct {
	API AdminAPIForChangeRole
}

var ErrSelfDemotion = errors.New("cannot change your own role")

// ExecuteChangeUserRole reassigns one account's role. The server
// enforces admin authorization; this only validates the request shape
// and blocks an admin from demoting themselves.
func ExecuteChangeUserRole(ctx context.Context, input ChangeUserRoleInput, deps ChangeUserRoleDeps) error {
	if !session.IsValidRole(input.Role) {
		return ErrUnknownRole
	}
	if input.TargetEmail != "" && input.TargetEmail == input.ActorEmail {
		return ErrSelfDemotion
	}
	if err := deps.API.ChangeUserRole(ctx, input.UserID, input.Role); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "role_changed", "user_id", input.UserID, "role", input.Role, "actor", input.ActorEmail)
	return nil
}
