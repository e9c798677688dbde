// Package services contains the application services behind the CLI
// commands. This file defines authentication: login, logout, password change
// and the liveness probe.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fileshare/internal/client/client"
	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/client/session"
	"github.com/dmitrijs2005/fileshare/internal/common"
)

// AuthService defines authentication operations for the CLI.
//
// Errors coming from the backend are returned as *apierror.Error so the
// caller can tell session expiry apart from ordinary failures.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (session.Session, error)
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, newPassword []byte) error
	Ping(ctx context.Context) (string, error)
}

type authService struct {
	client  client.Client
	session *session.Manager
}

// NewAuthService constructs an AuthService bound to the API client and the
// session manager.
func NewAuthService(c client.Client, m *session.Manager) AuthService {
	return &authService{client: c, session: m}
}

// Login authenticates against the backend and commits the new session.
func (a *authService) Login(ctx context.Context, username string, password []byte) (session.Session, error) {
	if len(password) == 0 {
		return session.Session{}, common.ErrEmptyPassword
	}

	resp, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return session.Session{}, err
	}

	if err := a.session.Login(ctx, resp.AccessToken, &models.User{Username: username}, resp.MustChangePassword); err != nil {
		return session.Session{}, err
	}
	return a.session.Snapshot(), nil
}

// Logout drops the local session. The backend keeps no session state.
func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

// ChangePassword sets a new password for the current user and clears the
// must-change flag locally, as the backend does. If the session expired or
// changed hands while the call was in flight the result is not committed.
func (a *authService) ChangePassword(ctx context.Context, newPassword []byte) error {
	if len(newPassword) == 0 {
		return common.ErrEmptyPassword
	}

	epoch := a.session.Epoch()
	snap := a.session.Snapshot()
	if !snap.IsAuthenticated() {
		return common.ErrNotAuthenticated
	}

	if err := a.client.ChangePassword(ctx, snap.Token, string(newPassword)); err != nil {
		return err
	}

	if _, err := a.session.ClearMustChangePassword(ctx, epoch); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// Ping proxies a liveness check to the backend.
func (a *authService) Ping(ctx context.Context) (string, error) {
	return a.client.Ping(ctx)
}
