package deal

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	dealservice "github.com/thenoetrevino/rolodex/internal/services/deal"
)

// UpdateCmd returns the deal update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a deal",
		Long: `Update the fields given as flags; everything else is left as is.
Changing the stage moves the deal to the bottom of the new stage.

Examples:
  rolodex deal update <id> --stage=proposal --value=30000
  rolodex deal update <id> --clear-value --clear-contact
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Func(runUpdate),
	}

	addDealFlags(cmd)
	cmd.Flags().Bool("clear-value", false, "Remove the deal value")
	cmd.Flags().Bool("clear-contact", false, "Unlink the contact")
	cmd.Flags().Bool("clear-close-date", false, "Remove the close date")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Arg(0, "id")
	if err != nil {
		return nil, err
	}

	req := dealservice.UpdateDealRequest{
		ID:             id,
		ClearValue:     args.ParseBool("clear-value"),
		ClearCloseDate: args.ParseBool("clear-close-date"),
	}
	if args.Changed("title") {
		title := args.ParseStringOptional("title")
		req.Title = &title
	}
	if req.Value, err = args.ParseInt64Optional("value"); err != nil {
		return nil, err
	}
	if args.Changed("stage") {
		stage, err := args.ParseStage("stage")
		if err != nil {
			return nil, err
		}
		req.Stage = &stage
	}
	if args.Changed("contact") || args.ParseBool("clear-contact") {
		contactID := ""
		if !args.ParseBool("clear-contact") {
			contactID = args.ParseStringOptional("contact")
		}
		req.ContactID = &contactID
	}
	if args.Changed("description") {
		description := args.ParseStringOptional("description")
		req.Description = &description
	}
	if req.CloseDate, err = args.ParseDate("close-date"); err != nil {
		return nil, err
	}

	d, err := c.App.DealService.UpdateDeal(ctx, c.Session, req)
	if err != nil {
		return nil, err
	}
	return cli.Created{Kind: "deal", Row: cli.DealDetail{Deal: d}}, nil
}
