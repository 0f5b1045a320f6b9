package deal

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/board"
	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	"github.com/thenoetrevino/rolodex/internal/models"
)

// MoveCmd returns the deal move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a deal on the board",
		Long: `Move a deal the way a drag on the board does: drop it onto a stage
(appends to the bottom) or onto another deal (takes that deal's place).

Examples:
  rolodex deal move <id> --stage=won
  rolodex deal move <id> --before=<other-deal-id>
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Func(runMove),
	}

	cmd.Flags().String("stage", "", "Drop onto the end of this stage")
	cmd.Flags().String("before", "", "Drop onto this deal")
	cmd.MarkFlagsMutuallyExclusive("stage", "before")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runMove(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Arg(0, "id")
	if err != nil {
		return nil, err
	}

	var over string
	switch {
	case args.Changed("stage"):
		stage, err := args.ParseStage("stage")
		if err != nil {
			return nil, err
		}
		over = string(stage)
	case strings.TrimSpace(args.ParseStringOptional("before")) != "":
		over = strings.TrimSpace(args.ParseStringOptional("before"))
	default:
		return nil, cli.Usagef("one of --stage or --before is required")
	}

	deals, err := c.App.DealService.ListDeals(ctx, c.Session, "")
	if err != nil {
		return nil, err
	}
	m := board.New(board.Values(deals))
	for _, want := range []string{id, over} {
		if models.Stage(want).Valid() {
			continue
		}
		if _, ok := m.Find(want); !ok {
			return nil, fmt.Errorf("deal %s: %w", want, models.ErrNotFound)
		}
	}

	m.DragStart(id)
	result, ok := m.DragEnd(id, over)
	if !ok {
		return cli.Synced{}, nil
	}
	if err := c.App.DealService.SyncPositions(ctx, c.Session, result.Changes); err != nil {
		return nil, err
	}
	return cli.Synced{Applied: len(result.Changes)}, nil
}
