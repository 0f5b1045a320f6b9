// Package serve implements the command that runs the HTTP API
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	"github.com/thenoetrevino/rolodex/internal/server"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the JSON API until interrupted. Every /api route needs a bearer token,
so auth.secret or auth.jwks_url must be configured.

Examples:
  rolodex serve --addr=127.0.0.1:8080
`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (default from http.addr)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := handler.Formatter(cmd)

	cfg, err := cli.ConfigFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTP.Addr = addr
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, nil)
	if err != nil {
		return formatter.Fail(err)
	}
	if err := srv.Start(ctx); err != nil {
		return formatter.Fail(err)
	}
	return nil
}
