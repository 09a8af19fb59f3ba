// package api implements the HTTP binding to the backend origin.
//
// Every call goes to a single base URL, carries the session cookies held by
// the configured [http.Client]'s jar, and decodes the backend's response
// envelope `{success, data, message}`. Paginated collections nest their items
// under a `docs` field inside data; callers decode that themselves.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dunerain/vidtube/internal/shared"
)

// Error is a request rejected by the server: a response was received but its
// envelope did not declare success. The message is what views display.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request rejected (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request rejected (%d)", e.Status)
}

// envelope is the backend's response convention. Absence of success:true is a
// failure even on HTTP 2xx.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client performs authenticated requests against one backend origin.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a Client for the given origin. The http.Client should
// carry a cookie jar so the session cookie rides along on every call.
func NewClient(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Get performs a GET request and decodes the envelope's data field into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, "application/json", r, out)
}

// Patch performs a PATCH request with an optional JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, "application/json", r, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, out)
}

// FilePart is a named file attached to a multipart upload.
type FilePart struct {
	Field    string
	Filename string
	Reader   io.Reader
}

// Upload performs a multipart request with form fields and file parts. Used
// by video upload/edit and the avatar/cover image endpoints.
func (c *Client) Upload(ctx context.Context, method, path string, fields map[string]string, files []FilePart, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	for _, part := range files {
		fw, err := w.CreateFormFile(part.Field, part.Filename)
		if err != nil {
			return fmt.Errorf("failed to create form file %s: %w", part.Field, err)
		}
		if _, err := io.Copy(fw, part.Reader); err != nil {
			return fmt.Errorf("failed to copy file %s: %w", part.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return c.do(ctx, method, path, w.FormDataContentType(), &buf, out)
}

func encodeJSON(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

// do performs the request and unwraps the response envelope.
//
// Error taxonomy: transport failures wrap [shared.ErrAPIRequest], rejected
// requests return [*Error], and a deliberate cancellation comes back with the
// context's error intact so callers can swallow it silently.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", shared.GenerateID())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			c.logger.Debug("api request cancelled", "method", method, "path", path)
			return err
		}
		c.logger.Error("api request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if !env.Success {
		c.logger.Warn("api request rejected", "method", method, "path", path, "status", resp.StatusCode, "message", env.Message)
		return &Error{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}
