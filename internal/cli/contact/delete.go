package contact

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
)

// DeleteCmd returns the contact delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact",
		Long: `Delete a contact and its activity log. Deals linked to the contact are
kept and unlinked. Requires confirmation unless --force, --json or --quiet.`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Func(runDelete),
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

	contact, err := c.App.ContactService.GetContact(ctx, c.Session, id)
	if err != nil {
		return nil, err
	}

	if !args.ParseBool("force") && !args.ParseBool("quiet") && !args.ParseBool("json") {
		cmd := args.GetCmd()
		fmt.Fprintf(cmd.OutOrStdout(), "Delete %s '%s' and its activity? (y/N): ", contact.Type, contact.Name)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			return cli.Cancelled{}, nil
		}
	}

	if err := c.App.ContactService.DeleteContact(ctx, c.Session, id); err != nil {
		return nil, err
	}
	return cli.Deleted{ID: id, Kind: string(contact.Type)}, nil
}
