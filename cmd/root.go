// Package cmd assembles the rolodex command tree
package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/activity"
	"github.com/thenoetrevino/rolodex/internal/cli/board"
	"github.com/thenoetrevino/rolodex/internal/cli/contact"
	"github.com/thenoetrevino/rolodex/internal/cli/dashboard"
	"github.com/thenoetrevino/rolodex/internal/cli/deal"
	"github.com/thenoetrevino/rolodex/internal/cli/match"
	"github.com/thenoetrevino/rolodex/internal/cli/serve"
	"github.com/thenoetrevino/rolodex/internal/config"
	"github.com/thenoetrevino/rolodex/internal/logging"
)

// NewRootCmd builds the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	var logCloser io.Closer

	rootCmd := &cobra.Command{
		Use:   "rolodex",
		Short: "Rolodex - A recruiting CRM for candidates, clients and deals",
		Long: `Rolodex keeps candidates and clients, matches them, and tracks placements
on a deal pipeline. Every command accepts --json and --quiet for scripting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")

			var (
				cfg *config.Config
				err error
			)
			if path != "" {
				cfg, err = config.LoadFile(path)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return &cli.DataError{Err: err}
			}

			logCloser, err = logging.Init(cfg.Log)
			if err != nil {
				return err
			}

			cmd.SetContext(cli.WithConfig(cmd.Context(), cfg))
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &cli.UsageError{Message: err.Error()}
	})
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/rolodex/config.yaml)")

	rootCmd.AddCommand(
		contact.ContactCmd(),
		deal.DealCmd(),
		activity.ActivityCmd(),
		match.MatchCmd(),
		dashboard.DashboardCmd(),
		board.BoardCmd(),
		serve.ServeCmd(),
	)

	return rootCmd
}

// Execute runs the command tree against os.Args
func Execute() error {
	return NewRootCmd().Execute()
}
