// Package common contains shared constants and sentinel errors used across
// fileshare client components.
package common

// AuthorizationHeaderName carries the bearer credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-call correlation id.
const RequestIDHeaderName = "X-Request-ID"

// Keys of the persisted session record in the local metadata table.
const (
	TokenKey              = "token"
	UserKey               = "user"
	MustChangePasswordKey = "mustChangePassword"
)
