package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/common"
)

const shareUsage = "Usage: share <password|-> <minutes>"

// Upload sends the files as a new share and remembers it for Share.
func (a *App) Upload(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		fmt.Fprintln(a.out, "Usage: upload <path>...")
		return common.ErrNoFiles
	}

	res, err := a.shareService.Upload(ctx, paths)
	if err != nil {
		a.lastShare = nil
		return a.handleErr("Upload failed", err)
	}
	a.lastShare = res

	fmt.Fprintln(a.out, "Files uploaded successfully!")
	fmt.Fprintf(a.out, "Share link: %s\n", res.ShareLink)
	fmt.Fprintf(a.out, "Share id:   %s\n", res.PublicID)
	for _, f := range res.Files {
		fmt.Fprintf(a.out, "  - %s\n", f.Filename)
	}
	if res.ExpiresAt != nil {
		fmt.Fprintf(a.out, "Expires:    %s\n", res.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}

// Share applies "share <password|-> <minutes>" to the last upload. "-"
// leaves the password unchanged.
func (a *App) Share(ctx context.Context, args []string) error {
	if a.lastShare == nil {
		fmt.Fprintln(a.out, "Nothing uploaded yet, use upload first")
		return common.ErrNoShare
	}
	if len(args) != 2 {
		fmt.Fprintln(a.out, shareUsage)
		return fmt.Errorf("share: expected 2 arguments, got %d", len(args))
	}

	password := args[0]
	if password == "-" {
		password = ""
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		fmt.Fprintln(a.out, shareUsage)
		return fmt.Errorf("share: invalid minutes %q: %w", args[1], err)
	}

	return a.UpdateShare(ctx, a.lastShare.PublicID, password, minutes)
}

// UpdateShare changes the password and lifetime of the share publicID.
func (a *App) UpdateShare(ctx context.Context, publicID, password string, minutes int) error {
	if err := a.shareService.UpdateSettings(ctx, publicID, password, minutes); err != nil {
		return a.handleErr("Error updating settings", err)
	}
	fmt.Fprintln(a.out, "Settings updated successfully!")
	return nil
}
