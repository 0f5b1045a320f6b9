package contact

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	contactservice "github.com/thenoetrevino/rolodex/internal/services/contact"
)

// UpdateCmd returns the contact update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a contact",
		Long: `Update the fields given as flags; everything else is left as is.
Passing --skills replaces the whole skill list.

Examples:
  rolodex contact update <id> --availability=not_looking
  rolodex contact update <id> --skills=go,rust --salary=140000
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Func(runUpdate),
	}

	addContactFlags(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Arg(0, "id")
	if err != nil {
		return nil, err
	}

	existing, err := c.App.ContactService.GetContact(ctx, c.Session, id)
	if err != nil {
		return nil, err
	}
	in := contactservice.InputFrom(existing)
	if err := applyFlags(args, &in); err != nil {
		return nil, err
	}

	contact, err := c.App.ContactService.UpdateContact(ctx, c.Session, id, in)
	if err != nil {
		return nil, err
	}
	return cli.Created{Kind: string(contact.Type), Row: cli.ContactDetail{Contact: contact}}, nil
}
