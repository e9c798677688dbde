// Package models defines the client-side data shapes shared by the session
// layer, the local store and the API client.
package models

// User is the identity attached to an authenticated session.
type User struct {
	Username string `json:"username"`
}

// SessionRecord is the durable copy of the session fields. A zero record
// (empty Token) means "nobody is logged in".
type SessionRecord struct {
	Token              string
	User               *User
	MustChangePassword bool
}

// Empty reports whether the record carries no credential.
func (r SessionRecord) Empty() bool {
	return r.Token == ""
}
