package deal

import (
	"context"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	"github.com/thenoetrevino/rolodex/internal/models"
)

// SyncCmd returns the deal sync subcommand
func SyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Apply a batch of board positions",
		Long: `Apply a JSON array of {"id","stage","position"} rows, the same batch the
board sends after a drag. Rows are written in order and the first failure
stops the batch.

Examples:
  rolodex deal sync --file=positions.json
  echo '[{"id":"<id>","stage":"Won","position":0}]' | rolodex deal sync --file=-
`,
		RunE: handler.Func(runSync),
	}

	cmd.Flags().String("file", "-", "Batch file, - for stdin")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runSync(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	var r io.Reader = args.GetCmd().InOrStdin()
	if path := args.ParseStringOptional("file"); path != "-" && path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var updates []models.PositionUpdate
	if err := sonic.ConfigStd.NewDecoder(r).Decode(&updates); err != nil {
		return nil, &cli.DataError{Err: err}
	}

	if err := c.App.DealService.SyncPositions(ctx, c.Session, updates); err != nil {
		return nil, err
	}
	return cli.Synced{Applied: len(updates)}, nil
}
