package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aki/twp/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Serve read-only Model Context Protocol tools over stdio.

Tools: repo_info (remote host, repository and branch) and workspace_status
(untracked files and the ignore file state). Nothing is staged or pushed.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	container, err := createContainer(cmd)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(container, Version)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	container.Logger.Info("starting MCP server", "root", container.Git.Root())
	return server.ServeStdio()
}
