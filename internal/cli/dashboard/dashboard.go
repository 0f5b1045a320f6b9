// Package dashboard implements the pipeline summary command
package dashboard

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
)

// DashboardCmd returns the dashboard command
func DashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show pipeline totals",
		RunE:  handler.Func(runDashboard),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runDashboard(ctx context.Context, c *cli.CLI, _ *handler.Arguments) (any, error) {
	d, err := c.App.DashboardService.Dashboard(ctx, c.Session)
	if err != nil {
		return nil, err
	}
	return cli.DashboardView{Dashboard: d}, nil
}
