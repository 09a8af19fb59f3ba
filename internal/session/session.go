// package session owns the client's identity state: who is signed in, whether
// that question has been answered yet, and the route guard that depends on the
// answer.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/models"
	"github.com/dunerain/vidtube/internal/query"
	"github.com/dunerain/vidtube/internal/shared"
)

// CookieStore is the subset of the persistent jar the session layer needs:
// the ability to drop every credential on logout.
type CookieStore interface {
	Clear() error
}

// Manager tracks the authenticated user. Exactly one Bootstrap resolves the
// identity question per process; until it has, the answer is "unknown" rather
// than "signed out", and the route guard refuses to decide.
type Manager struct {
	client  *api.Client
	cookies CookieStore
	cache   *query.Cache
	logger  *log.Logger

	mu       sync.Mutex
	current  *models.User
	resolved bool
}

// NewManager creates a Manager. cookies and cache may be nil in contexts that
// have no persistent jar or entity cache to clear on logout.
func NewManager(client *api.Client, cookies CookieStore, cache *query.Cache, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{client: client, cookies: cookies, cache: cache, logger: logger}
}

// Bootstrap asks the backend who the stored credentials belong to. A rejected
// or failed check resolves the session as anonymous: the client works signed
// out rather than refusing to start. Only a deliberate cancellation leaves
// the session unresolved, untouched for a later attempt.
func (m *Manager) Bootstrap(ctx context.Context) error {
	var user models.User
	err := m.client.Get(ctx, "/users/currentUser", &user)

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case err == nil && user.ID != "":
		m.current = &user
		m.logger.Debug("session bootstrapped", "username", user.Username)
	case err == nil:
		// A success envelope with an empty or null payload carries no
		// identity; that is an anonymous session, not a zero-value user.
		m.current = nil
		m.logger.Debug("session bootstrapped anonymous", "reason", "empty identity payload")
	default:
		m.current = nil
		m.logger.Debug("session bootstrapped anonymous", "error", err)
	}
	m.resolved = true

	return nil
}

// loginResponse carries the signed-in user alongside the tokens the backend
// also sets as cookies; only the user matters here.
type loginResponse struct {
	User *models.User `json:"user"`
}

// Login authenticates with an email or username plus password. On success the
// session resolves to the returned user; the session cookies land in the jar
// via the http client.
func (m *Manager) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	body := map[string]string{"password": password}
	if strings.Contains(identifier, "@") {
		body["email"] = identifier
	} else {
		body["username"] = identifier
	}

	var resp loginResponse
	if err := m.client.Post(ctx, "/users/login", body, &resp); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrLoginFailed, err)
	}
	if resp.User == nil {
		return nil, fmt.Errorf("%w: login response missing user", shared.ErrLoginFailed)
	}

	m.mu.Lock()
	m.current = resp.User
	m.resolved = true
	m.mu.Unlock()

	m.logger.Info("signed in", "username", resp.User.Username)
	return resp.User, nil
}

// Registration collects the fields of the /users/register form. Avatar is
// required by the backend; the cover image is optional.
type Registration struct {
	FullName string
	Email    string
	Username string
	Password string
	Avatar   api.FilePart
	Cover    *api.FilePart
}

// Register creates an account. The backend does not sign the new user in, so
// the session state is left as it was.
func (m *Manager) Register(ctx context.Context, reg Registration) (*models.User, error) {
	fields := map[string]string{
		"fullName": reg.FullName,
		"email":    reg.Email,
		"username": reg.Username,
		"password": reg.Password,
	}

	files := []api.FilePart{reg.Avatar}
	if reg.Cover != nil {
		files = append(files, *reg.Cover)
	}

	var user models.User
	if err := m.client.Upload(ctx, "POST", "/users/register", fields, files, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout terminates the session. The server call is best effort: whatever it
// returns, the local cookies and cached entities are dropped and the session
// resolves to anonymous, so the client can always sign out.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.client.Post(ctx, "/users/logout", nil, nil); err != nil {
		m.logger.Warn("server-side logout failed, clearing local session anyway", "error", err)
	}

	m.mu.Lock()
	m.current = nil
	m.resolved = true
	m.mu.Unlock()

	if m.cache != nil {
		m.cache.InvalidateAll()
	}
	if m.cookies != nil {
		if err := m.cookies.Clear(); err != nil {
			return fmt.Errorf("failed to clear stored credentials: %w", err)
		}
	}

	m.logger.Info("signed out")
	return nil
}

// Current returns the signed-in user, or false when anonymous or unresolved.
func (m *Manager) Current() (*models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil, false
	}
	return m.current, true
}

// Resolved reports whether Bootstrap has answered the identity question.
func (m *Manager) Resolved() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolved
}

// Gate is the check the mutation dispatcher consults before letting a write
// leave the client.
func (m *Manager) Gate() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.resolved {
		return shared.ErrSessionUnresolved
	}
	if m.current == nil {
		return shared.ErrNotAuthenticated
	}
	return nil
}
