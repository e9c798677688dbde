package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/client/apierror"
	"github.com/dmitrijs2005/fileshare/internal/client/session"
	"github.com/dmitrijs2005/fileshare/internal/common"
)

var (
	errEmptyUsername    = errors.New("username is required")
	errPasswordMismatch = errors.New("passwords do not match")
)

// Login prompts for credentials and authenticates. A rejected login is
// reported inline; it never raises the session gate. When the backend
// demands a password change the prompt for it follows immediately.
//
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	if username == "" {
		fmt.Fprintln(a.out, "Username is required")
		return errEmptyUsername
	}

	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %s\n", message(err))
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", s.Username())
	if s.MustChangePassword {
		fmt.Fprintln(a.out, "You must change your password before continuing.")
		return a.ChangePassword(ctx)
	}
	return nil
}

// Logout drops the session locally and on disk.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// ChangePassword asks for the new password twice and submits it.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return common.ErrNotAuthenticated
	}

	first, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(first)

	second, err := getPassword(a.out, "Repeat new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(second)

	if !bytes.Equal(first, second) {
		fmt.Fprintln(a.out, "Passwords do not match")
		return errPasswordMismatch
	}

	if err := a.authService.ChangePassword(ctx, first); err != nil {
		return a.handleErr("Password change failed", err)
	}
	fmt.Fprintln(a.out, "Password changed successfully")
	return nil
}

// Whoami prints the identity, the credential lifetime when it is readable
// and whether the backend answers.
func (a *App) Whoami(ctx context.Context) error {
	s := a.session.Snapshot()
	if !s.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not logged in")
	} else {
		fmt.Fprintf(a.out, "Logged in as %s\n", s.Username())
		if left, err := session.ExpiresIn(s.Token, time.Now()); err == nil {
			if left > 0 {
				fmt.Fprintf(a.out, "Token expires in %s\n", left.Round(time.Second))
			} else {
				fmt.Fprintln(a.out, "Token has expired")
			}
		}
		if s.MustChangePassword {
			fmt.Fprintln(a.out, "Password change required")
		}
	}

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if msg, err := a.authService.Ping(pctx); err != nil {
		fmt.Fprintf(a.out, "Server %s: %s\n", a.config.ServerURL, message(err))
	} else {
		fmt.Fprintf(a.out, "Server %s: %s\n", a.config.ServerURL, msg)
	}
	return nil
}

// handleErr is the call-site rule for backend failures: an error
// classified as session expiry raises the gate and is not printed; any
// other error is printed after action.
func (a *App) handleErr(action string, err error) error {
	if apierror.IsSessionExpired(err) {
		a.session.TriggerExpiration()
		return err
	}
	fmt.Fprintf(a.out, "%s: %s\n", action, message(err))
	return err
}

// message renders err for the terminal, preferring the classified text.
func message(err error) string {
	if e, ok := apierror.As(err); ok {
		return e.Message
	}
	return err.Error()
}
