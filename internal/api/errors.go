package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a backend-rejected request: the server answered with a
// non-2xx status and (usually) a message field in the body.
//
// Transport failures (connection refused, DNS, timeout) are not Errors;
// they surface as wrapped errors from the underlying http.Client.
type Error struct {
	// Status is the HTTP status code of the response.
	Status int

	// Message is the backend's human-readable message, or a generic
	// fallback when the body carried none.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// MessageOr returns the backend message from err if it is an api.Error
// with a non-empty message, otherwise the given fallback.
func MessageOr(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsAuthError reports whether err is a backend rejection for missing or
// invalid credentials.
func IsAuthError(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}
