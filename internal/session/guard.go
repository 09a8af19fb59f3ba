package session

import "github.com/dunerain/vidtube/internal/shared"

// Decision is a route guard verdict.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionRedirectLogin
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect-login"
	default:
		return "unknown"
	}
}

// Guard decides whether a view may render. It never guesses: before Bootstrap
// has resolved, it returns [shared.ErrSessionUnresolved] and the caller shows
// a loading state instead of bouncing a signed-in user to the login screen.
func (m *Manager) Guard(requiresAuth bool) (Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.resolved {
		return DecisionAllow, shared.ErrSessionUnresolved
	}
	if requiresAuth && m.current == nil {
		return DecisionRedirectLogin, nil
	}
	return DecisionAllow, nil
}
