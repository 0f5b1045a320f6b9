package contact

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	"github.com/thenoetrevino/rolodex/internal/models"
)

// ListCmd returns the contact list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Long:  "List contacts a page at a time, optionally filtered by type, text or skill.",
		RunE:  handler.Func(runList),
	}

	cmd.Flags().String("type", "", "Only candidates or only clients")
	cmd.Flags().String("search", "", "Match name, email or company")
	cmd.Flags().String("specialty", "", "Only candidates with this skill")
	cmd.Flags().Int("page", 1, "Page number")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	page, err := args.ParseInt("page", 1)
	if err != nil {
		return nil, err
	}

	result, err := c.App.ContactService.ListContacts(ctx, c.Session, models.ContactFilter{
		Type:      models.ContactType(strings.ToLower(args.ParseStringOptional("type"))),
		Search:    args.ParseStringOptional("search"),
		Specialty: args.ParseStringOptional("specialty"),
		Page:      page,
	})
	if err != nil {
		return nil, err
	}
	if result.Contacts == nil {
		result.Contacts = []*models.Contact{}
	}
	return cli.ContactPageView{ContactPage: result}, nil
}
