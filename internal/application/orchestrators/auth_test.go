package orchestrators

import (
	"context"
	"errors"
	"testing"

	"github.com/zobayerlabib/edumate/internal/adapters/api"
	"github.com/zobayerlabib/edumate/internal/domain/route"
	"github.com/zobayerlabib/edumate/internal/domain/session"
)

// mockAuthAPI implements the auth-facing API interfaces for testing.
type mockAuthAPI struct {
	loginResult api.LoginResult
	loginErr    error
	registered  []api.RegisterInput
	registerErr error
	otp         string
	resetErr    error
	resetCalls  int
}

func (m *mockAuthAPI) Login(_ context.Context, input api.LoginInput) (api.LoginResult, error) {
	if m.loginErr != nil {
		return api.LoginResult{}, m.loginErr
	}
	return m.loginResult, nil
}

func (m *mockAuthAPI) Register(_ context.Context, input api.RegisterInput) error {
	if m.registerErr != nil {
		return m.registerErr
	}
	m.registered = append(m.registered, input)
	return nil
}

func (m *mockAuthAPI) ForgotPassword(_ context.Context, email string) (string, error) {
	return m.otp, nil
}

func (m *mockAuthAPI) ResetPassword(_ context.Context, email, otp, newPassword string) error {
	m.resetCalls++
	return m.resetErr
}

// mockSessions implements the session sink/source interfaces for testing.
type mockSessions struct {
	current  session.Session
	loginErr error
	logouts  int
}

func (m *mockSessions) Login(_ context.Context, s session.Session) error {
	if m.loginErr != nil {
		return m.loginErr
	}
	m.current = s
	return nil
}

func (m *mockSessions) Logout(_ context.Context) error {
	m.logouts++
	m.current = session.Session{}
	return nil
}

func (m *mockSessions) Restore(_ context.Context) (session.Session, error) {
	return m.current, nil
}

func studentLoginResult() api.LoginResult {
	return api.LoginResult{
		Token:    "tok-abc",
		Identity: session.Identity{Email: "student@example.com", Role: session.RoleStudent},
	}
}

// --- ExecuteLogin tests ---

func TestExecuteLogin_SuccessLandsOnRoleHome(t *testing.T) {
	sessions := &mockSessions{}
	deps := LoginDeps{API: &mockAuthAPI{loginResult: studentLoginResult()}, Sessions: sessions}

	res, err := ExecuteLogin(context.Background(), LoginInput{
		Email: "student@example.com", Password: "pw", Role: session.RoleStudent,
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteLogin: %v", err)
	}
	if res.Target != "/student" {
		t.Errorf("Target = %q, want /student", res.Target)
	}
	if sessions.current.Token != "tok-abc" {
		t.Error("session was not installed")
	}
	if sessions.current.Identity.Role != session.RoleStudent {
		t.Errorf("installed role = %q", sessions.current.Identity.Role)
	}
}

func TestExecuteLogin_HonorsRememberedPath(t *testing.T) {
	deps := LoginDeps{API: &mockAuthAPI{loginResult: studentLoginResult()}, Sessions: &mockSessions{}}

	res, err := ExecuteLogin(context.Background(), LoginInput{
		Email: "student@example.com", Password: "pw", Role: session.RoleStudent,
		From: "/student/quiz/42",
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteLogin: %v", err)
	}
	if res.Target != "/student/quiz/42" {
		t.Errorf("Target = %q, want the remembered path", res.Target)
	}
}

func TestExecuteLogin_ServerRoleWinsForDestination(t *testing.T) {
	// The user asked for student; the server says teacher. The
	// server's identity decides both the session and the landing page.
	apiMock := &mockAuthAPI{loginResult: api.LoginResult{
		Token:    "tok-t",
		Identity: session.Identity{Email: "t@example.com", Role: session.RoleTeacher},
	}}
	sessions := &mockSessions{}

	res, err := ExecuteLogin(context.Background(), LoginInput{
		Email: "t@example.com", Password: "pw", Role: session.RoleStudent,
	}, LoginDeps{API: apiMock, Sessions: sessions})
	if err != nil {
		t.Fatalf("ExecuteLogin: %v", err)
	}
	if res.Target != "/teacher" {
		t.Errorf("Target = %q, want /teacher", res.Target)
	}
}

func TestExecuteLogin_ValidationFailuresSkipNetwork(t *testing.T) {
	tests := []struct {
		name  string
		input LoginInput
		want  error
	}{
		{"empty email", LoginInput{Password: "pw", Role: session.RoleStudent}, ErrMissingCredentials},
		{"empty password", LoginInput{Email: "a@b.c", Role: session.RoleStudent}, ErrMissingCredentials},
		{"bad role", LoginInput{Email: "a@b.c", Password: "pw", Role: "superuser"}, ErrUnknownRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := LoginDeps{API: &mockAuthAPI{loginErr: errors.New("must not be called")}, Sessions: &mockSessions{}}
			if _, err := ExecuteLogin(context.Background(), tt.input, deps); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExecuteLogin_BackendRejectionLeavesNoSession(t *testing.T) {
	sessions := &mockSessions{}
	deps := LoginDeps{API: &mockAuthAPI{loginErr: errors.New("bad credentials")}, Sessions: sessions}

	if _, err := ExecuteLogin(context.Background(), LoginInput{
		Email: "a@b.c", Password: "pw", Role: session.RoleStudent,
	}, deps); err == nil {
		t.Fatal("expected an error")
	}
	if sessions.current.IsAuthenticated() {
		t.Error("no session must be installed on failure")
	}
}

// --- ExecuteLogout tests ---

func TestExecuteLogout_Idempotent(t *testing.T) {
	sessions := &mockSessions{}
	for i := 0; i < 2; i++ {
		if err := ExecuteLogout(context.Background(), LogoutDeps{Sessions: sessions}); err != nil {
			t.Fatalf("ExecuteLogout #%d: %v", i+1, err)
		}
	}
	if sessions.logouts != 2 {
		t.Errorf("logouts = %d, want 2", sessions.logouts)
	}
}

// --- ExecuteRestore tests ---

func TestExecuteRestore_GatesRestoredSession(t *testing.T) {
	sessions := &mockSessions{current: session.Session{
		Token:    "tok-abc",
		Identity: session.Identity{Email: "s@example.com", Role: session.RoleStudent},
	}}

	res, err := ExecuteRestore(context.Background(), RestoreInput{
		RequestedPath: "/student",
		AllowedRoles:  []string{session.RoleStudent},
	}, RestoreDeps{Sessions: sessions})
	if err != nil {
		t.Fatalf("ExecuteRestore: %v", err)
	}
	if res.Decision.Outcome != route.Allow {
		t.Errorf("Outcome = %v, want Allow", res.Decision.Outcome)
	}
}

func TestExecuteRestore_AnonymousBouncesToLoginWithFrom(t *testing.T) {
	res, err := ExecuteRestore(context.Background(), RestoreInput{
		RequestedPath: "/teacher",
		AllowedRoles:  []string{session.RoleTeacher},
	}, RestoreDeps{Sessions: &mockSessions{}})
	if err != nil {
		t.Fatalf("ExecuteRestore: %v", err)
	}
	if res.Decision.Outcome != route.RedirectLogin {
		t.Fatalf("Outcome = %v, want RedirectLogin", res.Decision.Outcome)
	}
	if res.Decision.From != "/teacher" {
		t.Errorf("From = %q, want /teacher", res.Decision.From)
	}
}

func TestExecuteRestore_WrongRoleBouncesHome(t *testing.T) {
	sessions := &mockSessions{current: session.Session{
		Token:    "tok-abc",
		Identity: session.Identity{Email: "s@example.com", Role: session.RoleStudent},
	}}

	res, err := ExecuteRestore(context.Background(), RestoreInput{
		RequestedPath: "/admin",
		AllowedRoles:  []string{session.RoleAdmin},
	}, RestoreDeps{Sessions: sessions})
	if err != nil {
		t.Fatalf("ExecuteRestore: %v", err)
	}
	if res.Decision.Outcome != route.RedirectHome {
		t.Fatalf("Outcome = %v, want RedirectHome", res.Decision.Outcome)
	}
	if res.Decision.Target != "/student" {
		t.Errorf("Target = %q, want /student", res.Decision.Target)
	}
}

// --- ExecuteRegister tests ---

func TestExecuteRegister_Valid(t *testing.T) {
	apiMock := &mockAuthAPI{}
	err := ExecuteRegister(context.Background(), RegisterInput{
		Email: "new@example.com", Password: "secret1", ConfirmPassword: "secret1",
		Role: session.RoleTeacher,
	}, RegisterDeps{API: apiMock})
	if err != nil {
		t.Fatalf("ExecuteRegister: %v", err)
	}
	if len(apiMock.registered) != 1 || apiMock.registered[0].Role != session.RoleTeacher {
		t.Errorf("registered = %+v", apiMock.registered)
	}
}

func TestExecuteRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"mismatch", RegisterInput{Email: "a@b.c", Password: "secret1", ConfirmPassword: "secret2", Role: session.RoleStudent}, ErrPasswordMismatch},
		{"too short", RegisterInput{Email: "a@b.c", Password: "ab", ConfirmPassword: "ab", Role: session.RoleStudent}, ErrPasswordTooShort},
		{"admin self-registration", RegisterInput{Email: "a@b.c", Password: "secret1", ConfirmPassword: "secret1", Role: session.RoleAdmin}, ErrUnknownRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExecuteRegister(context.Background(), tt.input, RegisterDeps{API: &mockAuthAPI{}})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

// --- Password reset tests ---

func TestExecuteForgotPassword_ReturnsChallenge(t *testing.T) {
	res, err := ExecuteForgotPassword(context.Background(), ForgotPasswordInput{Email: "a@b.c"},
		ResetDeps{API: &mockAuthAPI{otp: "482913"}})
	if err != nil {
		t.Fatalf("ExecuteForgotPassword: %v", err)
	}
	if res.OTP != "482913" {
		t.Errorf("OTP = %q", res.OTP)
	}
}

func TestExecuteResetPassword_RequiresCode(t *testing.T) {
	apiMock := &mockAuthAPI{}
	err := ExecuteResetPassword(context.Background(), ResetPasswordInput{
		Email: "a@b.c", NewPassword: "secret1", ConfirmPassword: "secret1",
	}, ResetDeps{API: apiMock})
	if !errors.Is(err, ErrMissingOTP) {
		t.Fatalf("err = %v, want ErrMissingOTP", err)
	}
	if apiMock.resetCalls != 0 {
		t.Error("backend must not be called without a code")
	}
}

func TestExecuteResetPassword_Valid(t *testing.T) {
	apiMock := &mockAuthAPI{}
	err := ExecuteResetPassword(context.Background(), ResetPasswordInput{
		Email: "a@b.c", OTP: " 482913 ", NewPassword: "secret1", ConfirmPassword: "secret1",
	}, ResetDeps{API: apiMock})
	if err != nil {
		t.Fatalf("ExecuteResetPassword: %v", err)
	}
	if apiMock.resetCalls != 1 {
		t.Errorf("resetCalls = %d, want 1", apiMock.resetCalls)
	}
}
