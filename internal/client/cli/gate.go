package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fileshare/internal/common"
)

// gateHint tells the REPL user how to get past the gate.
const gateHint = "Type 'login' or press Enter to log in again."

// gateBanner is shown when the session expires and again, with gateHint,
// for every refused input while the gate is up.
func gateBanner(user string) string {
	var b strings.Builder
	b.WriteString("*** Session Expired ***\n")
	b.WriteString("Your session has expired. Please log in again to continue using the application.\n")
	if user != "" {
		fmt.Fprintf(&b, "(signed in as %s)", user)
	}
	return strings.TrimRight(b.String(), "\n")
}

// isAcknowledgement reports whether line dismisses the gate. There is no
// way to dismiss it without logging out.
func isAcknowledgement(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "ok", "login":
		return true
	default:
		return false
	}
}

// Acknowledge dismisses the gate: logout, then the login prompt.
func (a *App) Acknowledge(ctx context.Context) error {
	return a.session.AcknowledgeExpiration(ctx)
}

func (a *App) staleUser() string {
	return a.session.Snapshot().Username()
}

// toLogin is the interactive navigator: straight into the login prompt.
func (a *App) toLogin(ctx context.Context) error {
	fmt.Fprintln(a.out, "Please log in again.")
	return a.Login(ctx)
}

// RunOnce runs a single non-interactive command. If it raises the gate the
// session is wiped right away, the user is told how to sign in again and
// common.ErrSessionExpired replaces the backend error.
func (a *App) RunOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	a.session.SetNavigator(nil)

	err := fn(ctx)
	if a.session.GateVisible() {
		if ackErr := a.session.AcknowledgeExpiration(ctx); ackErr != nil {
			return ackErr
		}
		fmt.Fprintln(a.out, "Run 'fileshare login' to sign in again.")
		return common.ErrSessionExpired
	}
	return err
}
