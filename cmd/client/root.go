package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/fileshare/internal/client/cli"
	"github.com/dmitrijs2005/fileshare/internal/client/config"
	"github.com/dmitrijs2005/fileshare/internal/logging"
)

// rootCmd builds the command tree. Without a subcommand it opens the shell.
func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fileshare",
		Short: "Upload files and share them by link",
		Long: `fileshare is the command-line client of the file sharing service.

Run it without arguments for an interactive shell, or use one of the
subcommands for a single action. The session is kept between runs in
the store file (see --store).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				return app.Shell(ctx)
			})
		},
	}

	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		shellCmd(),
		loginCmd(),
		logoutCmd(),
		statusCmd(),
		uploadCmd(),
		shareCmd(),
		passwdCmd(),
	)
	return cmd
}

// withApp loads the configuration, builds the App and runs fn with it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *cli.App) error) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}

// once runs fn as a non-interactive command.
func once(cmd *cobra.Command, fn func(ctx context.Context, app *cli.App) error) error {
	return withApp(cmd, func(ctx context.Context, app *cli.App) error {
		return app.RunOnce(ctx, func(ctx context.Context) error {
			return fn(ctx, app)
		})
	})
}
