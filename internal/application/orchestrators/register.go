package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/zobayerlabib/edumate/internal/adapters/api"
	"github.com/zobayerlabib/edumate/internal/domain/session"
)

// AuthAPIForRegister defines the backend surface needed by Register.
type AuthAPIForRegister interface {
	Register(ctx context.Context, input api.RegisterInput) error
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	API AuthAPIForRegister
}

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// ExecuteRegister creates an account. Registration does not log in;
// the new account authenticates through the normal login flow.
// PRE: Email is non-empty, passwords match, role is student or teacher
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) error {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return ErrMissingCredentials
	}
	if len(input.Password) < 6 {
		return ErrPasswordTooShort
	}
	if input.Password != input.ConfirmPassword {
		return ErrPasswordMismatch
	}
	// Admin accounts are provisioned server-side, never self-registered.
	if input.Role != session.RoleStudent && input.Role != session.RoleTeacher {
		return ErrUnknownRole
	}

	if err := deps.API.Register(ctx, api.RegisterInput{
		Email:    email,
		Password: input.Password,
		Role:     input.Role,
	}); err != nil {
		slog.Info("auth_event", "event", "register_failed", "email", email, "error", err)
		return err
	}
	slog.Info("auth_event", "event", "register_success", "email", email, "role", input.Role)
	return nil
}
