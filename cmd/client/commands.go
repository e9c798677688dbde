package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/fileshare/internal/client/cli"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				return app.Shell(ctx)
			})
		},
	}
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return once(cmd, func(ctx context.Context, app *cli.App) error {
				return app.Login(ctx)
			})
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return once(cmd, func(ctx context.Context, app *cli.App) error {
				return app.Logout(ctx)
			})
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"whoami"},
		Short:   "Show the current user and whether the server answers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return once(cmd, func(ctx context.Context, app *cli.App) error {
				return app.Whoami(ctx)
			})
		},
	}
}

func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <path>...",
		Short: "Upload files as a new share",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return once(cmd, func(ctx context.Context, app *cli.App) error {
				return app.Upload(ctx, args)
			})
		},
	}
}

func shareCmd() *cobra.Command {
	var (
		password string
		minutes  int
	)

	cmd := &cobra.Command{
		Use:   "share <public-id>",
		Short: "Set the password and lifetime of a share",
		Long: `Set the password and/or lifetime of an uploaded share.

An empty password and zero minutes leave the current value unchanged.
The lifetime cannot exceed 1440 minutes (one day).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return once(cmd, func(ctx context.Context, app *cli.App) error {
				return app.UpdateShare(ctx, args[0], password, minutes)
			})
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password required to download")
	cmd.Flags().IntVarP(&minutes, "expires", "e", 0, "minutes until the share expires (max 1440)")
	return cmd
}

func passwdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return once(cmd, func(ctx context.Context, app *cli.App) error {
				return app.ChangePassword(ctx)
			})
		},
	}
}
