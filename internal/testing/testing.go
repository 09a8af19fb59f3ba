// package testing contains shared testing utilities
package testing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// WriteEnvelope writes the backend's response envelope. Tests use it to build
// fixture handlers that look like the real API.
func WriteEnvelope(w http.ResponseWriter, status int, success bool, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"data":    data,
		"message": message,
	})
}

// OKEnvelope writes a 200 success envelope around data.
func OKEnvelope(w http.ResponseWriter, data any) {
	WriteEnvelope(w, http.StatusOK, true, data, "")
}

// NewEnvelopeServer starts a server that answers every request with a success
// envelope around data, and closes it with the test.
func NewEnvelopeServer(t *testing.T, data any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		OKEnvelope(w, data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

var _ io.Writer = (*FWriter)(nil)
var _ http.RoundTripper = (*MockRoundTripper)(nil)
