// Package api provides the authenticated HTTP transport for the
// procurement backend.
//
// Every endpoint answers with the same envelope:
//
//	{"success": true, "data": ...}
//	{"success": false, "error": "..."}
//
// The client decodes the envelope, returning data on success and an
// *Error carrying the server message otherwise. No retries are
// attempted; callers decide how failures surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"procure/internal/logger"
)

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Client is a thin authenticated JSON/multipart transport.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a transport rooted at baseURL. The token, when
// non-empty, is sent as a bearer credential on every request.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.WithComponent("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get performs a GET request and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := fmt.Sprintf("%s %s", method, path)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Err: fmt.Errorf("encode request body: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, op, out)
}

// PostMultipart uploads a single file under the given form field name.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, file io.Reader, out any) error {
	op := fmt.Sprintf("POST %s", path)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("create form file: %w", err)}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("copy file contents: %w", err)}
	}
	if err := writer.Close(); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("finalize multipart body: %w", err)}
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, op, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, op string, out any) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Msg("Request failed to reach backend")
		return &Error{Op: op, Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.log.Warn().Err(closeErr).Str("op", op).Msg("Failed to close response body")
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	c.log.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Int("bytes", len(raw)).
		Msg("Request completed")

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return c.statusError(op, resp.StatusCode, "")
		}
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response envelope: %w", err)}
	}

	if !env.Success {
		return c.statusError(op, resp.StatusCode, env.Error)
	}
	if resp.StatusCode >= 400 {
		return c.statusError(op, resp.StatusCode, env.Error)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response data: %w", err)}
		}
	}
	return nil
}

func (c *Client) statusError(op string, status int, message string) error {
	apiErr := &Error{Op: op, Status: status, Message: message}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		apiErr.Err = ErrUnauthorized
	case http.StatusNotFound:
		apiErr.Err = ErrNotFound
	}
	c.log.Error().
		Str("op", op).
		Int("status", status).
		Str("server_error", message).
		Msg("Backend rejected request")
	return apiErr
}
