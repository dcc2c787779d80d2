package domain

import "strings"

// GateAction is the outcome of evaluating a navigation against the current
// auth state.
type GateAction string

const (
	// GateWait means auth state is still loading; render a loading
	// indicator and neither redirect nor render protected content.
	GateWait GateAction = "wait"
	// GateAllow renders the requested content unmodified.
	GateAllow GateAction = "allow"
	// GateRedirect renders nothing and navigates to RedirectTo.
	GateRedirect GateAction = "redirect"
)

// GateState is the client shell's view of the current caller.
type GateState struct {
	Loading       bool `json:"loading"`
	Authenticated bool `json:"authenticated"`
	Role          Role `json:"role"`
}

// GateDecision tells the client shell what to do with a navigation.
type GateDecision struct {
	Action     GateAction `json:"action"`
	RedirectTo string     `json:"redirect_to,omitempty"`
}

// Paths reachable without an authenticated identity.
var publicPaths = map[string]bool{
	"/":        true,
	"/welcome": true,
}

// EvaluateRoute decides whether a navigation may proceed. Authorization
// failures translate into silent redirects, never errors: unauthenticated
// callers on protected paths go back to "/", under-privileged callers on
// admin paths go to "/dashboard". This gate is UX defense-in-depth only;
// privileged callables repeat the check server-side.
func EvaluateRoute(path string, state GateState) GateDecision {
	if state.Loading {
		return GateDecision{Action: GateWait}
	}
	if !state.Authenticated {
		if publicPaths[path] {
			return GateDecision{Action: GateAllow}
		}
		return GateDecision{Action: GateRedirect, RedirectTo: "/"}
	}
	if isAdminPath(path) && !state.Role.IsAdminOrManager() {
		return GateDecision{Action: GateRedirect, RedirectTo: "/dashboard"}
	}
	return GateDecision{Action: GateAllow}
}

func isAdminPath(path string) bool {
	return path == "/admin" || strings.HasPrefix(path, "/admin/")
}
