// Package activity implements the contact activity log commands
package activity

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	"github.com/thenoetrevino/rolodex/internal/models"
	activityservice "github.com/thenoetrevino/rolodex/internal/services/activity"
)

// ActivityCmd returns the activity parent command
func ActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Log calls, emails and notes against a contact",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// AddCmd returns the activity add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <contact-id>",
		Short: "Record an activity",
		Long: `Record a note, call or email on a contact. The body is markdown.

Examples:
  rolodex activity add <contact-id> --type=call --body="Intro call, keen on remote roles"
  cat notes.md | rolodex activity add <contact-id> --body=-
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Func(runAdd),
	}

	cmd.Flags().String("type", "note", "Activity type: note, call, email")
	cmd.Flags().String("body", "", "Activity text (use - for stdin)")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runAdd(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	contactID, err := args.Arg(0, "contact-id")
	if err != nil {
		return nil, err
	}

	// Handle body from stdin
	body := args.ParseStringOptional("body")
	if body == "-" {
		data, err := io.ReadAll(args.GetCmd().InOrStdin())
		if err != nil {
			return nil, err
		}
		body = string(data)
	}

	act, err := c.App.ActivityService.CreateActivity(ctx, c.Session, activityservice.CreateActivityRequest{
		ContactID: contactID,
		Type:      models.ActivityType(strings.ToLower(strings.TrimSpace(args.ParseStringOptional("type")))),
		Body:      body,
	})
	if err != nil {
		return nil, err
	}
	return cli.Created{Kind: string(act.Type), Row: cli.ActivityView{Activity: act}}, nil
}

// ListCmd returns the activity list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <contact-id>",
		Short: "Show a contact's activity, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Func(runList),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	contactID, err := args.Arg(0, "contact-id")
	if err != nil {
		return nil, err
	}
	activities, err := c.App.ActivityService.ListByContact(ctx, c.Session, contactID)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []*models.Activity{}
	}
	return cli.ActivityList(activities), nil
}

// DeleteCmd returns the activity delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <contact-id> <activity-id>",
		Short: "Delete an activity",
		Args:  cobra.MaximumNArgs(2),
		RunE:  handler.Func(runDelete),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	contactID, err := args.Arg(0, "contact-id")
	if err != nil {
		return nil, err
	}
	id, err := args.Arg(1, "activity-id")
	if err != nil {
		return nil, err
	}
	if err := c.App.ActivityService.DeleteActivity(ctx, c.Session, id, contactID); err != nil {
		return nil, err
	}
	return cli.Deleted{ID: id, Kind: "activity"}, nil
}
