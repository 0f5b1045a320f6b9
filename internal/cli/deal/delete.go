package deal

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
)

// DeleteCmd returns the deal delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a deal",
		Long:  "Delete a deal by ID (requires confirmation unless --force, --json or --quiet).",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Func(runDelete),
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Arg(0, "id")
	if err != nil {
		return nil, err
	}

	d, err := c.App.DealService.GetDeal(ctx, c.Session, id)
	if err != nil {
		return nil, err
	}

	// Ask for confirmation unless force or a machine-readable mode
	if !args.ParseBool("force") && !args.ParseBool("quiet") && !args.ParseBool("json") {
		cmd := args.GetCmd()
		fmt.Fprintf(cmd.OutOrStdout(), "Delete deal '%s'? (y/N): ", d.Title)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			return cli.Cancelled{}, nil
		}
	}

	if err := c.App.DealService.DeleteDeal(ctx, c.Session, id); err != nil {
		return nil, err
	}
	return cli.Deleted{ID: id, Kind: "deal"}, nil
}
