package repositories

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dunerain/vidtube/internal/shared"
)

// PersistentJar implements [http.CookieJar] over an in-memory jar with
// write-through persistence to a [CookieRepository]. The session cookie set
// by /users/login survives process restarts this way, the same as a browser's
// cookie store does for the web client.
type PersistentJar struct {
	mu     sync.Mutex
	jar    *cookiejar.Jar
	repo   *CookieRepository
	logger *log.Logger
}

// NewPersistentJar creates a jar seeded with every unexpired cookie in the
// repository. Persistence failures are logged, never fatal: a jar that only
// lives for one process is degraded, not broken.
func NewPersistentJar(repo *CookieRepository, logger *log.Logger) (*PersistentJar, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	p := &PersistentJar{jar: jar, repo: repo, logger: logger}

	if err := repo.PurgeExpired(); err != nil {
		logger.Warn("failed to purge expired cookies", "error", err)
	}

	origins, err := repo.Origins()
	if err != nil {
		return nil, err
	}

	for _, o := range origins {
		u, err := url.Parse(o)
		if err != nil {
			logger.Warn("skipping unparseable cookie origin", "origin", o, "error", err)
			continue
		}
		cookies, err := repo.List(o)
		if err != nil {
			return nil, err
		}
		jar.SetCookies(u, cookies)
	}

	return p, nil
}

// SetCookies stores cookies in the in-memory jar and writes them through to
// the repository.
func (p *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.jar.SetCookies(u, cookies)

	if err := p.repo.Save(origin(u), cookies); err != nil {
		p.logger.Warn("failed to persist cookies", "origin", origin(u), "error", err)
	}
}

// Cookies returns the cookies to send with a request to u.
func (p *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.jar.Cookies(u)
}

// Clear drops every cookie, in memory and on disk. Called on logout so a
// failed server-side termination still leaves the client signed out.
func (p *PersistentJar) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	p.jar = jar

	return p.repo.Clear()
}
