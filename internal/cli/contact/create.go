package contact

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	contactservice "github.com/thenoetrevino/rolodex/internal/services/contact"
)

// CreateCmd returns the contact create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a candidate or client",
		Long: `Create a contact. Candidates carry a profile (skills, salary, availability),
clients carry what they are hiring for.

Examples:
  rolodex contact create --name="Ada Lovelace" --skills=go,sql --salary=120000 --availability=open
  rolodex contact create --name="Acme" --type=client --specialty=go --budget-min=100000 --budget-max=150000
`,
		RunE: handler.Func(runCreate),
	}

	addContactFlags(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	if _, err := args.ParseString("name"); err != nil {
		return nil, err
	}

	var in contactservice.Input
	if err := applyFlags(args, &in); err != nil {
		return nil, err
	}

	contact, err := c.App.ContactService.CreateContact(ctx, c.Session, in)
	if err != nil {
		return nil, err
	}
	return cli.Created{Kind: string(contact.Type), Row: cli.ContactDetail{Contact: contact}}, nil
}
