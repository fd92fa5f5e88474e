package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/twp/internal/cli/ui"
)

var infoRemote string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the remote host, repository and branch",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&infoRemote, "remote", "", "Remote to describe (default from config)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	container, err := createContainer(cmd)
	if err != nil {
		return err
	}

	id, err := container.Identify(cmd.Context(), infoRemote)
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(id)
	}

	ui.PrintIdentity(id)
	return nil
}
