// Package app provides dependency injection container for the application
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"

	"github.com/aki/twp/internal/core/config"
	"github.com/aki/twp/internal/core/git"
	"github.com/aki/twp/internal/core/ignore"
	"github.com/aki/twp/internal/core/logger"
	"github.com/aki/twp/internal/core/save"
	"github.com/aki/twp/internal/core/workspace"
)

// Options are the command-line overrides applied when building a container
type Options struct {
	// Dir is the directory to operate in; empty means the current directory
	Dir string
	// ConfigPath overrides the configuration file location
	ConfigPath string
	// LogLevel and LogFormat override the configured values when set
	LogLevel  string
	LogFormat string
	// LogOutput defaults to stderr
	LogOutput io.Writer
}

// Container holds all manager instances and their dependencies
type Container struct {
	// WorkDir is the directory commands operate in
	WorkDir string

	ConfigManager *config.Manager
	Config        *config.Config
	Logger        logger.Logger

	// Set by NewContainer only
	Git       *git.Operations
	Workspace billy.Filesystem
}

// NewContainer loads configuration and opens the repository containing opts.Dir
func NewContainer(ctx context.Context, opts Options) (*Container, error) {
	c, err := NewContainerWithoutRepo(ctx, opts)
	if err != nil {
		return nil, err
	}

	c.Git, err = git.Open(c.WorkDir, git.WithLogger(c.Logger))
	if err != nil {
		return nil, err
	}

	c.Workspace, err = c.Git.Filesystem()
	if err != nil {
		return nil, err
	}

	c.Logger.Debug("container ready", "root", c.Git.Root(), "config", c.ConfigManager.GetConfigPath())
	return c, nil
}

// NewContainerWithoutRepo creates a container without opening a repository.
// This is useful for commands that work outside a working tree (e.g., config, version).
func NewContainerWithoutRepo(ctx context.Context, opts Options) (*Container, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	path, err := config.ResolvePath(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	c := &Container{
		WorkDir:       dir,
		ConfigManager: config.NewManager(path),
	}

	c.Config, err = c.ConfigManager.Load(ctx)
	if err != nil {
		return nil, err
	}

	c.Logger, err = newLogger(c.Config.Log, opts)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// newLogger builds the logger from configuration, letting flags win
func newLogger(cfg config.LogConfig, opts Options) (logger.Logger, error) {
	levelName := cfg.Level
	if opts.LogLevel != "" {
		levelName = opts.LogLevel
	}
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	formatName := cfg.Format
	if opts.LogFormat != "" {
		formatName = opts.LogFormat
	}
	format, err := logger.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}

	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(out),
	), nil
}

// Identify reports the identity of the configured remote (or the override)
func (c *Container) Identify(ctx context.Context, remote string) (git.Identity, error) {
	if remote == "" {
		remote = c.Config.Remote
	}
	return c.Git.Identify(ctx, remote)
}

// Status inspects the working tree for untracked files and the ignore file
func (c *Container) Status(ctx context.Context) (workspace.Status, error) {
	return workspace.Inspect(ctx, c.Git, c.Workspace, c.Config.Ignore.File)
}

// NewOrchestrator builds a save orchestrator from configuration plus overrides
func (c *Container) NewOrchestrator(confirm ignore.ConfirmFunc, overrides save.Options) *save.Orchestrator {
	opts := c.Config.SaveOptions()
	if overrides.Remote != "" {
		opts.Remote = overrides.Remote
	}
	if overrides.Message != "" {
		opts.Message = overrides.Message
	}
	return save.NewOrchestrator(c.Git, c.Workspace, confirm, opts, c.Logger)
}
