// Package commands provides CLI command implementations for twp.
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aki/twp/internal/cli/ui"
)

// Global flags shared by every command
var (
	flagDir    string
	flagConfig string
	flagFormat string
)

var rootCmd = &cobra.Command{
	Use:   "twp",
	Short: "Save and publish a git workspace in one step",
	Long: `twp inspects a working tree for untracked files, makes sure an ignore file
is in place, then stages, commits and pushes everything to the configured remote.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := ui.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		return ui.SetGlobalFormatter(format)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "C", "", "Run as if started in this directory")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Configuration file (default $TWP_CONFIG or $XDG_CONFIG_HOME/twp/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "pretty", "Output format (pretty, json)")
	RegisterLoggerFlags(rootCmd)

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. SIGINT and SIGTERM cancel in-flight git commands.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		_ = ui.GlobalFormatter.OutputError(err)
	}
	return err
}
