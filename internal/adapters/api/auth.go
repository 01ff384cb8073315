package api

import (
	"context"
	"fmt"

	"github.com/zobayerlabib/edumate/internal/domain/session"
)

// LoginInput carries the login form fields. The selected role is sent
// with the credentials; the server's answer is authoritative when the
// response names a role.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResult is a successful authentication: the bearer token plus the
// identity the server asserted.
type LoginResult struct {
	Token    string
	Identity session.Identity
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
	User        *struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// Login authenticates against the backend.
// POST: Returns a token and identity; the response's role (nested user
// object or top-level field) wins over the requested one
func (c *Client) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", input, &resp); err != nil {
		return LoginResult{}, err
	}
	if resp.AccessToken == "" {
		return LoginResult{}, fmt.Errorf("login response carried no token")
	}

	ident := session.Identity{Email: input.Email, Role: input.Role}
	if resp.User != nil {
		if resp.User.Email != "" {
			ident.Email = resp.User.Email
		}
		if resp.User.Role != "" {
			ident.Role = resp.User.Role
		}
	} else if resp.Role != "" {
		ident.Role = resp.Role
	}

	return LoginResult{Token: resp.AccessToken, Identity: ident}, nil
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates an account. The role defaults at registration and is
// only changed later server-side by an admin.
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	return c.post(ctx, "/auth/register", input, nil)
}

// ForgotPassword starts the reset flow and returns the challenge code
// the backend issued (the demo backend returns it inline instead of
// mailing it).
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp struct {
		Message string `json:"message"`
		OTP     string `json:"otp"`
	}
	body := map[string]string{"email": email}
	if err := c.post(ctx, "/auth/forgot-password", body, &resp); err != nil {
		return "", err
	}
	return resp.OTP, nil
}

// ResetPassword completes the reset flow with the challenge code.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := map[string]string{
		"email":        email,
		"otp":          otp,
		"new_password": newPassword,
	}
	return c.post(ctx, "/auth/reset-password", body, nil)
}

// Me fetches the identity behind the current token. Role is
// authoritative from the server.
func (c *Client) Me(ctx context.Context) (session.Identity, error) {
	var resp struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.get(ctx, "/auth/me", &resp); err != nil {
		return session.Identity{}, err
	}
	return session.Identity{Email: resp.Email, Role: resp.Role}, nil
}
