package models

// LoginResponse is the body returned by POST /token.
type LoginResponse struct {
	AccessToken        string `json:"access_token"`
	TokenType          string `json:"token_type"`
	MustChangePassword bool   `json:"must_change_password"`
}

// SharedFile is one file of an uploaded share.
type SharedFile struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
}

// ShareResult is the body returned by POST /upload.
type ShareResult struct {
	PublicID          string       `json:"public_id"`
	ShareLink         string       `json:"share_link"`
	Files             []SharedFile `json:"files"`
	ExpiresAt         *Timestamp   `json:"expires_at,omitempty"`
	PasswordProtected bool         `json:"password_protected"`
}

// ShareSettings is the body of POST /share/{public_id}. Nil fields are left
// unchanged by the backend; an empty password removes protection.
type ShareSettings struct {
	PublicID       string  `json:"public_id"`
	Password       *string `json:"password"`
	ExpiresMinutes *int    `json:"expires_minutes"`
}

// MessageResponse is the generic {"message": ...} acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
