// Package mcp exposes read-only workspace information as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aki/twp/internal/core/git"
	"github.com/aki/twp/internal/core/untracked"
	"github.com/aki/twp/internal/core/workspace"
)

// Workspace is what the tools report on
type Workspace interface {
	Identify(ctx context.Context, remote string) (git.Identity, error)
	Status(ctx context.Context) (workspace.Status, error)
}

// Server serves twp tools over MCP
type Server struct {
	mcpServer *server.MCPServer
	workspace Workspace
}

// NewServer creates an MCP server for one workspace
func NewServer(ws Workspace, version string) (*Server, error) {
	if ws == nil {
		return nil, fmt.Errorf("workspace is required")
	}

	s := &Server{
		mcpServer: server.NewMCPServer("twp", version, server.WithLogging()),
		workspace: ws,
	}
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("repo_info",
		mcp.WithDescription("Show the remote host, owner/repository and current branch"),
		mcp.WithString("remote",
			mcp.Description("Remote name (optional, defaults to the configured remote)"),
		),
	), s.handleRepoInfo)

	s.mcpServer.AddTool(mcp.NewTool("workspace_status",
		mcp.WithDescription("List untracked files, untracked dotfiles and the ignore file state"),
	), s.handleWorkspaceStatus)

	s.mcpServer.AddTool(mcp.NewTool("workspace_query",
		mcp.WithDescription("Answer one question about the workspace"),
		mcp.WithString("query",
			mcp.Description("One of: untracked, untracked-dirs, dotfiles, has-untracked-ignore"),
			mcp.Required(),
		),
	), s.handleWorkspaceQuery)
}

// ServeStdio blocks serving requests on stdin/stdout
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) handleRepoInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	remote, _ := request.GetArguments()["remote"].(string)

	id, err := s.workspace.Identify(ctx, remote)
	if err != nil {
		return nil, fmt.Errorf("failed to identify repository: %w", err)
	}

	return jsonResult(repoInfo{
		Identity: id,
		Name:     id.FullName(),
		Detached: id.Detached(),
	})
}

func (s *Server) handleWorkspaceStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := s.workspace.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect workspace: %w", err)
	}

	return jsonResult(statusInfo{
		Status:             status,
		HasUntrackedIgnore: status.HasUntrackedIgnoreFile(),
		Regular:            untracked.Strings(status.Untracked.Regular()),
	})
}

func (s *Server) handleWorkspaceQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, _ := request.GetArguments()["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	status, err := s.workspace.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect workspace: %w", err)
	}

	switch query {
	case "untracked":
		return jsonResult(untracked.Strings(status.Untracked.All))
	case "untracked-dirs":
		return jsonResult(untracked.Strings(status.Untracked.Dirs()))
	case "dotfiles":
		return jsonResult(untracked.Strings(status.Untracked.Dotfiles))
	case "has-untracked-ignore":
		return jsonResult(status.HasUntrackedIgnoreFile())
	default:
		return nil, fmt.Errorf("unknown query %q (expected one of %s)", query, strings.Join(workspace.QueryNames, ", "))
	}
}

type repoInfo struct {
	git.Identity
	Name     string `json:"name"`
	Detached bool   `json:"detached"`
}

type statusInfo struct {
	workspace.Status
	HasUntrackedIgnore bool     `json:"hasUntrackedIgnore"`
	Regular            []string `json:"regular"`
}

// jsonResult wraps content as an indented JSON text result
func jsonResult(content interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: string(data),
			},
		},
	}, nil
}
