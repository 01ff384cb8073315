// Package route implements the authorization gate evaluated on every
// navigation to a role-scoped view. The gate owns no state; it is a
// pure decision over the current session and the view's requirements,
// and must be re-run after any session mutation.
package route

import (
	"github.com/zobayerlabib/edumate/internal/domain/session"
)

// Outcome identifies the kind of gate decision.
type Outcome int

const (
	// Allow means the requested view may render.
	Allow Outcome = iota
	// RedirectLogin means the caller is unauthenticated and must be
	// sent to the login entry point, remembering the requested path.
	RedirectLogin
	// RedirectHome means the caller is authenticated but holds the
	// wrong role; they are sent to their own canonical area, never to
	// an error page.
	RedirectHome
)

// Decision carries the gate's verdict for one navigation.
type Decision struct {
	Outcome Outcome
	// From is the originally requested path, set on RedirectLogin so a
	// later successful login can return the caller there.
	From string
	// Target is the path to navigate to for either redirect outcome.
	Target string
}

// LoginPath is the unauthenticated entry point.
const LoginPath = "/login"

// Decide evaluates whether a view guarded by allowedRoles may render
// for the given session. An empty allowedRoles list means any
// authenticated caller is admitted.
// PRE: requestedPath identifies the view being navigated to
// POST: Returns exactly one of Allow, RedirectLogin, RedirectHome
// INVARIANT: sess is not mutated; the decision is a pure function of its inputs
func Decide(sess session.Session, allowedRoles []string, requestedPath string) Decision {
	if !sess.IsAuthenticated() {
		return Decision{Outcome: RedirectLogin, From: requestedPath, Target: LoginPath}
	}
	if len(allowedRoles) == 0 {
		return Decision{Outcome: Allow}
	}
	for _, role := range allowedRoles {
		if sess.Identity.Role == role {
			return Decision{Outcome: Allow}
		}
	}
	return Decision{Outcome: RedirectHome, Target: sess.Identity.HomePath()}
}
