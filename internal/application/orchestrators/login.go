package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/zobayerlabib/edumate/internal/adapters/api"
	"github.com/zobayerlabib/edumate/internal/domain/session"
)

// AuthAPIForLogin defines the backend surface needed by Login.
type AuthAPIForLogin interface {
	Login(ctx context.Context, input api.LoginInput) (api.LoginResult, error)
}

// SessionSinkForLogin defines the session surface needed by Login.
type SessionSinkForLogin interface {
	Login(ctx context.Context, s session.Session) error
}

// LoginInput carries input for the login orchestrator. From is the
// path the user was bounced away from, empty when login was direct.
type LoginInput struct {
	Email    string
	Password string
	Role     string
	From     string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	Session session.Session
	// Target is where navigation should land: the remembered From
	// path when one exists, the role home otherwise.
	Target string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	API      AuthAPIForLogin
	Sessions SessionSinkForLogin
}

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrUnknownRole        = errors.New("unknown role selection")
)

// ExecuteLogin authenticates, installs the session, and resolves the
// post-login destination.
// PRE: Email, password, and a valid role are provided
// POST: On success the session holds token and identity together and
// is persisted; Target honors the pre-login destination
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return LoginResult{}, ErrMissingCredentials
	}
	if !session.IsValidRole(input.Role) {
		return LoginResult{}, ErrUnknownRole
	}

	res, err := deps.API.Login(ctx, api.LoginInput{
		Email:    email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email, "error", err)
		return LoginResult{}, err
	}

	s, err := session.New(res.Token, res.Identity)
	if err != nil {
		return LoginResult{}, err
	}
	if err := deps.Sessions.Login(ctx, s); err != nil {
		return LoginResult{}, err
	}

	target := input.From
	if target == "" {
		target = s.Identity.HomePath()
	}
	return LoginResult{Session: s, Target: target}, nil
}
