// package services is the typed endpoint surface over the backend API. Each
// entity gets a small client that knows its paths and payload shapes; caching
// and invalidation live a layer up, in query.
package services

import (
	"fmt"
	"net/url"
	"strconv"
)

// page is the backend's pagination envelope: collections arrive under a docs
// field alongside paginate metadata.
type page[T any] struct {
	Docs       []T  `json:"docs"`
	TotalDocs  int  `json:"totalDocs"`
	TotalPages int  `json:"totalPages"`
	Page       int  `json:"page"`
	HasNext    bool `json:"hasNextPage"`
}

// ListOptions are the common pagination query parameters.
type ListOptions struct {
	Page  int
	Limit int
}

func (o ListOptions) apply(q url.Values) {
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return fmt.Sprintf("%s?%s", path, q.Encode())
}
