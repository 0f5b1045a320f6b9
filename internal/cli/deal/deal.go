// Package deal implements the deal pipeline commands
package deal

import (
	"github.com/spf13/cobra"
)

// DealCmd returns the deal parent command
func DealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Manage pipeline deals",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(SyncCmd())

	return cmd
}
