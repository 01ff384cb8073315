package orchestrators

import (
	"context"
	"errors"
	"log/slog"
)

// AdminAPIForDeleteUser defines the backend surface needed by DeleteUser.
type AdminAPIForDeleteUser interface {
	DeleteUser(ctx context.Context, userID int64) error
}

// DeleteUserInput carries the account removal request.
type DeleteUserInput struct {
	UserID      int64
	ActorEmail  string
	TargetEmail string
	// Confirmed must be set by the UI after an explicit confirmation
	// step; deletion also removes the account's attempt history.
	Confirmed bool
}

// DeleteUserDeps holds dependencies for DeleteUser.
type DeleteUserDeps struct {
	API AdminAPIForDeleteUser
}

var (
	ErrSelfDeletion = errors.New("cannot delete your own account")
	ErrNotConfirmed = errors.New("deletion requires confirmation")
)

// ExecuteDeleteUser removes an account after confirmation.
func ExecuteDeleteUser(ctx context.Context, input DeleteUserInput, deps DeleteUserDeps) error {
	if !input.Confirmed {
		return ErrNotConfirmed
	}
	if input.TargetEmail != "" && input.TargetEmail == input.ActorEmail {
		return ErrSelfDeletion
	}
	if err := deps.API.DeleteUser(ctx, input.UserID); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "user_deleted", "user_id", input.UserID, "actor", input.ActorEmail)
	return nil
}
