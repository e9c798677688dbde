// Package apierror turns failed backend responses into a single classified
// error value and decides whether a failure means "the credential is no
// longer valid".
//
// Call sites inspect the result with IsSessionExpired; the classification
// itself never triggers any session transition.
package apierror

import (
	"errors"
	"strconv"
)

// Error is a Classified API Error. It is built once per failed call by
// Classify (or by the interceptor for transport failures) and is never
// modified afterwards.
type Error struct {
	Message        string
	StatusCode     int // 0 when no HTTP response was received
	SessionExpired bool

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the transport failure behind a status-less error.
func (e *Error) Unwrap() error {
	return e.cause
}

// HasStatus reports whether a response status is known.
func (e *Error) HasStatus() bool {
	return e.StatusCode != 0
}

// String renders the message with its status, e.g. "[404] Share not found".
func (e *Error) String() string {
	if !e.HasStatus() {
		return e.Message
	}
	return "[" + strconv.Itoa(e.StatusCode) + "] " + e.Message
}

// Transport wraps a failure that produced no response at all. Such
// failures are never session expiry.
func Transport(message string, cause error) *Error {
	return &Error{Message: message, cause: cause}
}

// As extracts the classified error from err, following %w chains.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsSessionExpired reports whether err was classified as session expiry.
func IsSessionExpired(err error) bool {
	e, ok := As(err)
	return ok && e.SessionExpired
}
