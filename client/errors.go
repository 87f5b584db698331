// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"errors"
	"fmt"
)

// ErrNoEndpoint is returned when a client is constructed without an
// endpoint URL.
var ErrNoEndpoint = errors.New("agent endpoint URL is not set")

// HTTPError represents an HTTP-level failure: a non-2xx response, or a
// network failure reported with status code 503.
type HTTPError struct {
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("http error %d: %s: %v", e.StatusCode, e.Message, e.Cause)
	}
	return fmt.Sprintf("http error %d: %s", e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause.
func (e *HTTPError) Unwrap() error {
	return e.Cause
}

// NewHTTPError creates a new HTTPError.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// NewNetworkError wraps a network-level failure. The A2A client reports
// these as HTTP 503 so callers have a single status-keyed taxonomy.
func NewNetworkError(message string, cause error) *HTTPError {
	return &HTTPError{StatusCode: 503, Message: message, Cause: cause}
}

// JSONError represents a malformed response body or a malformed SSE frame.
type JSONError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *JSONError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("json error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("json error: %s", e.Message)
}

// Unwrap returns the underlying cause.
func (e *JSONError) Unwrap() error {
	return e.Cause
}

// NewJSONError creates a new JSONError.
func NewJSONError(message string, cause error) *JSONError {
	return &JSONError{Message: message, Cause: cause}
}

// IsHTTPStatus reports whether err is an HTTPError with the given status
// code.
func IsHTTPStatus(err error, statusCode int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == statusCode
}
