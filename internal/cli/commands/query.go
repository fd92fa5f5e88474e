package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aki/twp/internal/cli/ui"
	"github.com/aki/twp/internal/core/untracked"
	"github.com/aki/twp/internal/core/workspace"
)

// queries maps each query name to its line rendering
var queries = map[string]func(workspace.Status) []string{
	"untracked": func(s workspace.Status) []string {
		return untracked.Strings(s.Untracked.All)
	},
	"untracked-dirs": func(s workspace.Status) []string {
		return untracked.Strings(s.Untracked.Dirs())
	},
	"dotfiles": func(s workspace.Status) []string {
		return untracked.Strings(s.Untracked.Dotfiles)
	},
	"has-untracked-ignore": func(s workspace.Status) []string {
		return []string{fmt.Sprintf("%t", s.HasUntrackedIgnoreFile())}
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <untracked|untracked-dirs|dotfiles|has-untracked-ignore>",
	Short: "Print one fact about the workspace for scripts",
	Long: `Print one fact about the workspace, one value per line.

  untracked             untracked files
  untracked-dirs        untracked files, directories expanded
  dotfiles              untracked files whose name starts with a dot
  has-untracked-ignore  true if the ignore file exists but is not tracked`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: workspace.QueryNames,
	RunE:      runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	render, ok := queries[args[0]]
	if !ok {
		return fmt.Errorf("unknown query %q (expected one of %s)", args[0], strings.Join(workspace.QueryNames, ", "))
	}

	container, err := createContainer(cmd)
	if err != nil {
		return err
	}

	status, err := container.Status(cmd.Context())
	if err != nil {
		return err
	}

	lines := render(status)
	if ui.GlobalFormatter.IsJSON() {
		if args[0] == "has-untracked-ignore" {
			return ui.GlobalFormatter.Output(status.HasUntrackedIgnoreFile())
		}
		return ui.GlobalFormatter.Output(lines)
	}

	for _, line := range lines {
		ui.OutputLine("%s", line)
	}
	return nil
}
