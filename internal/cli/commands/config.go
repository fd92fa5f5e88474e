package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aki/twp/internal/cli/ui"
	"github.com/aki/twp/internal/core/config"
	"github.com/aki/twp/internal/filemanager"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage twp configuration",
	Long: `Manage the twp configuration file.

The file is looked up at --config, then $TWP_CONFIG, then
$XDG_CONFIG_HOME/twp/config.yaml. A missing file means defaults.`,
	Example: `  # Write the default configuration
  twp config init

  # Show the effective configuration
  twp config show`,
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing configuration file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	// The existing file is not loaded: init must be able to replace a broken one
	path, err := config.ResolvePath(flagConfig)
	if err != nil {
		return err
	}
	manager := config.NewManager(path)

	force := configInitForce
	if !force && manager.IsInitialized() && ui.IsTerminal(os.Stdin) && !ui.GlobalFormatter.IsJSON() {
		force = ui.ConfirmWithDefault(fmt.Sprintf("Overwrite existing configuration at %s?", path))
	}

	cfg, err := manager.Init(cmd.Context(), force)
	if err != nil {
		if errors.Is(err, filemanager.ErrExists) {
			return fmt.Errorf("configuration already exists at %s: use --force to overwrite", path)
		}
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(map[string]interface{}{
			"path":   path,
			"config": cfg,
		})
	}

	ui.Success("Wrote default configuration to %s", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	container, err := createContainerWithoutRepo(cmd)
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(container.Config)
	}

	data, err := yaml.Marshal(container.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if !container.ConfigManager.IsInitialized() {
		ui.OutputLine("# %s does not exist, showing defaults", container.ConfigManager.GetConfigPath())
	}
	return ui.GlobalFormatter.Output(string(data))
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	container, err := createContainerWithoutRepo(cmd)
	if err != nil {
		return err
	}

	path := container.ConfigManager.GetConfigPath()
	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(map[string]interface{}{
			"path":        path,
			"initialized": container.ConfigManager.IsInitialized(),
		})
	}

	ui.OutputLine("%s", path)
	return nil
}
