// Package board implements the interactive pipeline command
package board

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/cli/handler"
	"github.com/thenoetrevino/rolodex/internal/tui"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive deal board",
		Long: `Open the pipeline as a kanban board. Pick a deal up, move the cursor to
another card or stage and drop it; the new order is saved in the background
and reverted if saving fails. Key bindings come from key_mappings in the config
file.`,
		Args: cobra.NoArgs,
		RunE: runBoard,
	}
}

func runBoard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := handler.Formatter(cmd)

	cfg, err := cli.ConfigFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	c, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	model := tui.InitialModel(ctx, c.App.DealService, c.Session, cfg.KeyMappings)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	final, err := p.Run()
	if err != nil {
		return formatter.Fail(err)
	}
	if m, ok := final.(tui.Model); ok && m.Pending() > 0 {
		slog.Warn("board closed with unsaved moves", "pending", m.Pending())
	}
	return nil
}
