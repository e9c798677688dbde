// Package common defines shared constants and sentinel errors used across
// the client layers of fileshare. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Transport errors.
	ErrUnavailable = errors.New("server unavailable")
	ErrReadFile    = errors.New("read file")

	// Session lifecycle errors.
	ErrEmptyToken         = errors.New("empty token")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrAlreadyInitialized = errors.New("session already initialized")
	ErrSessionExpired     = errors.New("session expired, log in again")

	// Token inspection errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrNoExpiry     = errors.New("token carries no expiry")

	// Validation errors raised before any request is made.
	ErrNoFiles       = errors.New("no files selected")
	ErrNoShare       = errors.New("no share to update")
	ErrExpiryTooLong = errors.New("expiration time cannot exceed 1 day (1440 minutes)")
	ErrInvalidExpiry = errors.New("expiration must be a positive number of minutes")
	ErrEmptyPassword = errors.New("empty password")
)
