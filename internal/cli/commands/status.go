package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/twp/internal/cli/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List untracked files and the ignore file state",
	Long:  "List untracked files and the ignore file state without changing anything",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	container, err := createContainer(cmd)
	if err != nil {
		return err
	}

	status, err := container.Status(cmd.Context())
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(status)
	}

	ui.PrintUntracked(status.Untracked, status.IgnoreFile, status.IgnoreState)
	return nil
}
