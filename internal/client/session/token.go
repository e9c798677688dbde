package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can read from a credential without the
// signing key.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time // zero when the token has no exp claim
}

// InspectToken decodes the registered claims of a JWT without verifying its
// signature. Opaque (non-JWT) credentials return common.ErrInvalidToken.
func InspectToken(token string) (TokenInfo, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// ExpiresIn returns how long the token remains valid at now. Tokens without
// an exp claim return common.ErrNoExpiry.
func ExpiresIn(token string, now time.Time) (time.Duration, error) {
	info, err := InspectToken(token)
	if err != nil {
		return 0, err
	}
	if info.ExpiresAt.IsZero() {
		return 0, common.ErrNoExpiry
	}
	return info.ExpiresAt.Sub(now), nil
}
