package repositories

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"
)

// CookieRepository persists cookies per origin in SQLite.
type CookieRepository struct {
	db *sql.DB
}

// NewCookieRepository creates a new CookieRepository with the given database connection
func NewCookieRepository(db *sql.DB) *CookieRepository {
	return &CookieRepository{db: db}
}

// Save upserts the given cookies for an origin. Cookies with MaxAge < 0 are
// deleted, matching the jar semantics of an expiring Set-Cookie.
func (r *CookieRepository) Save(origin string, cookies []*http.Cookie) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range cookies {
		if c.MaxAge < 0 {
			if _, err := tx.Exec("DELETE FROM cookies WHERE host = ? AND name = ?", origin, c.Name); err != nil {
				return fmt.Errorf("failed to delete cookie %s: %w", c.Name, err)
			}
			continue
		}

		expires := c.Expires
		if c.MaxAge > 0 {
			expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second)
		}

		path := c.Path
		if path == "" {
			path = "/"
		}

		var expiresVal any
		if !expires.IsZero() {
			expiresVal = expires.UTC()
		}

		query := `
			INSERT INTO cookies (host, name, value, path, expires, secure, http_only)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(host, name, path) DO UPDATE SET
				value = excluded.value,
				expires = excluded.expires,
				secure = excluded.secure,
				http_only = excluded.http_only
		`
		if _, err := tx.Exec(query, origin, c.Name, c.Value, path, expiresVal, c.Secure, c.HttpOnly); err != nil {
			return fmt.Errorf("failed to save cookie %s: %w", c.Name, err)
		}
	}

	return tx.Commit()
}

// List returns the unexpired cookies stored for an origin.
func (r *CookieRepository) List(origin string) ([]*http.Cookie, error) {
	query := `
		SELECT name, value, path, expires, secure, http_only
		FROM cookies
		WHERE host = ?
	`

	rows, err := r.db.Query(query, origin)
	if err != nil {
		return nil, fmt.Errorf("failed to query cookies: %w", err)
	}
	defer rows.Close()

	var cookies []*http.Cookie
	now := time.Now()

	for rows.Next() {
		var (
			name, value, path string
			expires           sql.NullTime
			secure, httpOnly  bool
		)
		if err := rows.Scan(&name, &value, &path, &expires, &secure, &httpOnly); err != nil {
			return nil, fmt.Errorf("failed to scan cookie: %w", err)
		}

		if expires.Valid && expires.Time.Before(now) {
			continue
		}

		c := &http.Cookie{Name: name, Value: value, Path: path, Secure: secure, HttpOnly: httpOnly}
		if expires.Valid {
			c.Expires = expires.Time
		}
		cookies = append(cookies, c)
	}

	return cookies, rows.Err()
}

// Origins returns all origins with stored cookies.
func (r *CookieRepository) Origins() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT host FROM cookies")
	if err != nil {
		return nil, fmt.Errorf("failed to query origins: %w", err)
	}
	defer rows.Close()

	var origins []string
	for rows.Next() {
		var o string
		if err := rows.Scan(&o); err != nil {
			return nil, fmt.Errorf("failed to scan origin: %w", err)
		}
		origins = append(origins, o)
	}

	return origins, rows.Err()
}

// Clear removes all stored cookies.
func (r *CookieRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM cookies"); err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}

// PurgeExpired removes cookies that have passed their expiry.
func (r *CookieRepository) PurgeExpired() error {
	if _, err := r.db.Exec("DELETE FROM cookies WHERE expires IS NOT NULL AND expires < ?", time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to purge expired cookies: %w", err)
	}
	return nil
}
