package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// AuthAPIForReset defines the backend surface needed by the reset flow.
type AuthAPIForReset interface {
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

// ForgotPasswordInput carries the reset-request form.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordResult carries the issued challenge code. The demo
// backend returns the code inline; a production deployment would mail
// it and leave this empty.
type ForgotPasswordResult struct {
	OTP string
}

// ResetPasswordInput carries the reset-completion form.
type ResetPasswordInput struct {
	Email           string
	OTP             string
	NewPassword     string
	ConfirmPassword string
}

// ResetDeps holds dependencies for the reset flow.
type ResetDeps struct {
	API AuthAPIForReset
}

var ErrMissingOTP = errors.New("reset code is required")

// ExecuteForgotPassword starts the reset flow for an email.
func ExecuteForgotPassword(ctx context.Context, input ForgotPasswordInput, deps ResetDeps) (ForgotPasswordResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return ForgotPasswordResult{}, ErrMissingCredentials
	}
	otp, err := deps.API.ForgotPassword(ctx, email)
	if err != nil {
		return ForgotPasswordResult{}, err
	}
	slog.Info("auth_event", "event", "reset_requested", "email", email)
	return ForgotPasswordResult{OTP: otp}, nil
}

// ExecuteResetPassword completes the reset flow with the challenge
// code. The session is untouched; the user logs in with the new
// password afterwards.
func ExecuteResetPassword(ctx context.Context, input ResetPasswordInput, deps ResetDeps) error {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return ErrMissingCredentials
	}
	if strings.TrimSpace(input.OTP) == "" {
		return ErrMissingOTP
	}
	if len(input.NewPassword) < 6 {
		return ErrPasswordTooShort
	}
	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}

	if err := deps.API.ResetPassword(ctx, email, strings.TrimSpace(input.OTP), input.NewPassword); err != nil {
		slog.Info("auth_event", "event", "reset_failed", "email", email, "error", err)
		return err
	}
	slog.Info("auth_event", "event", "reset_success", "email", email)
	return nil
}
