// Package match implements candidate matching for clients
package match

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	"github.com/thenoetrevino/rolodex/internal/models"
	contactservice "github.com/thenoetrevino/rolodex/internal/services/contact"
)

// MatchCmd returns the match command
func MatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match [client-id]",
		Short: "Suggest candidates for a client",
		Long: `Suggest up to five available candidates whose skills include the client's
specialty and whose salary expectation fits the client's budget, cheapest
first. Without a client id the criteria come from flags.

Examples:
  rolodex match <client-id>
  rolodex match --specialty=go --min=90000 --max=140000
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Func(runMatch),
	}

	cmd.Flags().String("specialty", "", "Required skill")
	cmd.Flags().Int64("min", 0, "Salary budget minimum")
	cmd.Flags().Int64("max", 0, "Salary budget maximum")
	cmd.Flags().Int("limit", models.DefaultMatchLimit, "Maximum number of candidates")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runMatch(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	var (
		matches []*models.Contact
		err     error
	)

	if len(args.Args) > 0 {
		matches, err = c.App.ContactService.MatchCandidates(ctx, c.Session, args.Args[0])
	} else {
		req := contactservice.MatchRequest{}
		if req.Specialty, err = args.ParseString("specialty"); err != nil {
			return nil, cli.Usagef("a client id or --specialty is required")
		}
		if req.BudgetMin, err = args.ParseInt64Optional("min"); err != nil {
			return nil, err
		}
		if req.BudgetMax, err = args.ParseInt64Optional("max"); err != nil {
			return nil, err
		}
		if req.Limit, err = args.ParseInt("limit", models.DefaultMatchLimit); err != nil {
			return nil, err
		}
		matches, err = c.App.ContactService.Match(ctx, c.Session, req)
	}
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []*models.Contact{}
	}
	return cli.MatchList(matches), nil
}
