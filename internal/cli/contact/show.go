package contact

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	"github.com/thenoetrevino/rolodex/internal/models"
)

// ShowCmd returns the contact show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a contact with its deals and activity",
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

	contact, err := c.App.ContactService.GetContact(ctx, c.Session, id)
	if err != nil {
		return nil, err
	}
	deals, err := c.App.DealService.ListByContact(ctx, c.Session, id)
	if err != nil {
		return nil, err
	}
	activities, err := c.App.ActivityService.ListByContact(ctx, c.Session, id)
	if err != nil {
		return nil, err
	}

	if deals == nil {
		deals = []*models.Deal{}
	}
	if activities == nil {
		activities = []*models.Activity{}
	}
	return cli.ContactDetail{Contact: contact, Deals: deals, Activities: activities}, nil
}
