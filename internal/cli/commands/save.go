package commands

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/aki/twp/internal/cli/ui"
	"github.com/aki/twp/internal/core/save"
)

var (
	saveMessage string
	saveRemote  string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Stage, commit and push the workspace",
	Long: `Stage every untracked and modified file, commit, and push the current branch.

When no ignore file exists you are asked whether to create one. Answering no
aborts the save without touching the repository.

Exit codes: 0 saved and pushed, 2 aborted, 3 committed but push failed, 1 other errors.`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func init() {
	saveCmd.Flags().StringVarP(&saveMessage, "message", "m", "", "Commit message (default from config)")
	saveCmd.Flags().StringVar(&saveRemote, "remote", "", "Remote to push to (default from config)")
}

// saveOutput is the JSON rendering of a save run
type saveOutput struct {
	*save.Session
	Error string `json:"error,omitempty"`
}

func runSave(cmd *cobra.Command, args []string) error {
	container, err := createContainer(cmd)
	if err != nil {
		return err
	}

	jsonMode := ui.GlobalFormatter.IsJSON()

	// In JSON mode the prompt goes to stderr so stdout stays parseable
	promptOut := ui.Stdout
	if jsonMode {
		promptOut = ui.Stderr
	}
	styled := !jsonMode
	if f, ok := stdin.(*os.File); ok {
		styled = styled && ui.IsTerminal(f)
	}
	confirm := ui.NewConfirmFunc(stdin, promptOut, styled)

	orchestrator := container.NewOrchestrator(confirm, save.Options{
		Remote:  saveRemote,
		Message: saveMessage,
	})
	if !jsonMode {
		orchestrator.OnTransition(func(_ context.Context, _, to save.State, _ *save.Session) error {
			ui.PrintTransition(to)
			return nil
		})
	}

	session, runErr := orchestrator.Run(cmd.Context())

	if jsonMode {
		out := saveOutput{Session: session}
		if runErr != nil {
			out.Error = runErr.Error()
		}
		if err := ui.GlobalFormatter.Output(out); err != nil {
			return errors.Join(runErr, err)
		}
		return runErr
	}

	ui.PrintSaveResult(session)
	return runErr
}
