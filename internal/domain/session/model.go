package session

import (
	"errors"
	"strings"
)

// Role constants
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleStudent, RoleTeacher, RoleAdmin}

// Domain errors
var (
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrInvalidRole   = errors.New("role must be one of: student, teacher, admin")
	ErrEmptyToken    = errors.New("token cannot be empty")
	ErrTornSession   = errors.New("session must hold both token and identity, or neither")
	ErrNotAuthorized = errors.New("not authenticated")
)

// IsValidRole reports whether role is a known platform role.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if role == r {
			return true
		}
	}
	return false
}

// Identity is the caller's email and role as asserted by the backend.
// It exists only while authenticated.
type Identity struct {
	Email string
	Role  string
}

// Validate checks if the Identity has valid data.
// PRE: Identity struct is populated
// POST: Returns nil if valid, error otherwise
func (i Identity) Validate() error {
	if strings.TrimSpace(i.Email) == "" {
		return ErrEmptyEmail
	}
	if !IsValidRole(i.Role) {
		return ErrInvalidRole
	}
	return nil
}

// HomePath returns the canonical area for the identity's role.
func (i Identity) HomePath() string {
	return HomePathForRole(i.Role)
}

// HomePathForRole maps a role to its canonical dashboard path.
// Unknown roles fall back to the student area.
func HomePathForRole(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin"
	case RoleTeacher:
		return "/teacher"
	default:
		return "/student"
	}
}

// Session is the combination of a bearer credential and an Identity,
// or their joint absence.
type Session struct {
	Token    string
	Identity Identity
}

// IsAuthenticated reports whether a bearer credential is present.
// INVARIANT: Session fields are not mutated
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Validate enforces the joint-presence invariant: a token without an
// identity (or the reverse) is a torn session and never valid.
// PRE: none
// POST: Returns nil if the session is empty or fully populated
func (s Session) Validate() error {
	hasToken := s.Token != ""
	hasIdentity := s.Identity != (Identity{})
	if hasToken != hasIdentity {
		return ErrTornSession
	}
	if hasIdentity {
		return s.Identity.Validate()
	}
	return nil
}

// New builds an authenticated session.
// PRE: token is non-empty, identity validates
// POST: Returns a session for which IsAuthenticated() is true
func New(token string, identity Identity) (Session, error) {
	if token == "" {
		return Session{}, ErrEmptyToken
	}
	if err := identity.Validate(); err != nil {
		return Session{}, err
	}
	return Session{Token: token, Identity: identity}, nil
}
