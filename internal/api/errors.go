package api

import (
	"errors"
	"fmt"
)

// Common transport errors
var (
	// ErrUnauthorized is returned when the backend rejects the bearer
	// token (HTTP 401/403).
	ErrUnauthorized = errors.New("authentication with procurement API failed")

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrMissingBaseURL is returned when the client is constructed
	// without an API base URL.
	ErrMissingBaseURL = errors.New("missing procurement API base URL")
)

// Error is a failed API call: either a transport-level failure or a
// response whose envelope carries success=false. Message holds the
// server-provided error string when one was returned.
type Error struct {
	// Op is the operation that failed (e.g. "GET /purchase-invoices").
	Op string

	// Status is the HTTP status code, 0 when the request never
	// reached the server.
	Status int

	// Message is the server's error string, empty when unavailable.
	Message string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("api: %s failed: %s", e.Op, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("api: %s failed with status %d", e.Op, e.Status)
	default:
		return fmt.Sprintf("api: %s failed: %v", e.Op, e.Err)
	}
}

// Unwrap returns the underlying error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Err
}

// ServerMessage extracts the server-provided error string from err, or
// "" when err is not an API error or carried no message.
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
