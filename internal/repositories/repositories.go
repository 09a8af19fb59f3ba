// package repositories provides the persistence layer for client-side state
// that must outlive a single invocation.
//
// The only durable state the client owns is the cookie jar: the backend
// authenticates with httpOnly session cookies, and a CLI process plays the
// role the browser's cookie store plays for the web client. Entity data is
// never persisted; the query cache dies with the process.
package repositories

import (
	"net/url"
	"strings"
)

// origin normalizes a URL to the scheme://host form cookies are scoped by.
func origin(u *url.URL) string {
	return strings.ToLower(u.Scheme + "://" + u.Host)
}
