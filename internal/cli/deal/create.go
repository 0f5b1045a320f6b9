package deal

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	dealservice "github.com/thenoetrevino/rolodex/internal/services/deal"
)

// CreateCmd returns the deal create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new deal",
		Long: `Create a deal at the bottom of its stage.

Examples:
  # Simple deal in the Lead stage
  rolodex deal create --title="Acme backend hire"

  # Quiet mode for bash capture
  DEAL_ID=$(rolodex deal create --title="Acme backend hire" --quiet)

  # Full example
  rolodex deal create \
    --title="Acme backend hire" \
    --value=25000 \
    --stage=qualified \
    --contact=<contact-id> \
    --close-date=2026-12-01
`,
		RunE: handler.Func(runCreate),
	}

	addDealFlags(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

// addDealFlags registers the editable deal fields
func addDealFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Deal title")
	cmd.Flags().Int64("value", 0, "Deal value in whole currency units")
	cmd.Flags().String("stage", "", "Stage: Lead, Qualified, Proposal, Won, Lost")
	cmd.Flags().String("contact", "", "Linked contact ID")
	cmd.Flags().String("description", "", "Notes (markdown)")
	cmd.Flags().String("close-date", "", "Expected close date (YYYY-MM-DD)")
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	title, err := args.ParseString("title")
	if err != nil {
		return nil, err
	}
	value, err := args.ParseInt64Optional("value")
	if err != nil {
		return nil, err
	}
	stage, err := args.ParseStage("stage")
	if err != nil {
		return nil, err
	}
	closeDate, err := args.ParseDate("close-date")
	if err != nil {
		return nil, err
	}

	req := dealservice.CreateDealRequest{
		Title:       title,
		Value:       value,
		Stage:       stage,
		Description: args.ParseStringOptional("description"),
		CloseDate:   closeDate,
	}
	if args.Changed("contact") {
		contactID := args.ParseStringOptional("contact")
		req.ContactID = &contactID
	}

	d, err := c.App.DealService.CreateDeal(ctx, c.Session, req)
	if err != nil {
		return nil, err
	}
	return cli.Created{Kind: "deal", Row: cli.DealDetail{Deal: d}}, nil
}
