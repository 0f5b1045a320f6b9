package deal

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	"github.com/thenoetrevino/rolodex/internal/models"
)

// ListCmd returns the deal list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deals",
		Long:  "List deals in board order, optionally filtered by a title search.",
		RunE:  handler.Func(runList),
	}

	cmd.Flags().String("search", "", "Only deals whose title contains this text")
	cmd.Flags().String("contact", "", "Only deals linked to this contact")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	var (
		deals []*models.Deal
		err   error
	)
	switch {
	case args.Changed("contact"):
		deals, err = c.App.DealService.ListByContact(ctx, c.Session, args.ParseStringOptional("contact"))
	case args.ParseStringOptional("search") != "":
		deals, err = c.App.DealService.ListDeals(ctx, c.Session, args.ParseStringOptional("search"))
	default:
		deals, err = c.App.DealService.Board(ctx, c.Session)
	}
	if err != nil {
		return nil, err
	}
	if deals == nil {
		deals = []*models.Deal{}
	}
	return cli.DealList(deals), nil
}
