package client

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError represents a non-2xx HTTP response from the API. Message is the
// backend-provided error text, surfaced verbatim to callers.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsAuthFailure reports whether err is a 401 from the backend — an expired
// or invalid token, as opposed to a transient network or server error.
func IsAuthFailure(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// ErrorMessage extracts the backend's message text from err, falling back to
// the full error string for non-HTTP failures.
func ErrorMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return err.Error()
}
