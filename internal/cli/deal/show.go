package deal

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
)

// ShowCmd returns the deal show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show deal details",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Func(runShow),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runShow(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Arg(0, "id")
	if err != nil {
		return nil, err
	}
	d, err := c.App.DealService.GetDeal(ctx, c.Session, id)
	if err != nil {
		return nil, err
	}
	return cli.DealDetail{Deal: d}, nil
}
