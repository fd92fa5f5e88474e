// Package config provides configuration management for twp.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aki/twp/internal/filemanager"
)

const (
	// AppDir is the directory under the user config directory
	AppDir = "twp"
	// ConfigFile is the filename for the twp configuration
	ConfigFile = "config.yaml"
	// EnvConfig overrides the configuration path
	EnvConfig = "TWP_CONFIG"
)

// Manager handles the twp configuration file
type Manager struct {
	configPath string
	files      *filemanager.Manager[Config]
}

// NewManager creates a configuration manager for the file at configPath
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
		files:      filemanager.NewManager[Config](),
	}
}

// ResolvePath picks the configuration path: explicit path first, then
// $TWP_CONFIG, then twp/config.yaml under the user config directory
// ($XDG_CONFIG_HOME on Linux).
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppDir, ConfigFile), nil
}

// Load reads the configuration from disk. A missing file yields the defaults.
func (m *Manager) Load(ctx context.Context) (*Config, error) {
	cfg, err := m.files.Read(ctx, m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	applyDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", m.configPath, err)
	}
	return cfg, nil
}

// Save validates and writes the configuration to disk
func (m *Manager) Save(ctx context.Context, cfg *Config) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	if err := m.files.Write(ctx, m.configPath, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Init writes the default configuration. Without force an existing file is
// left alone and filemanager.ErrExists is returned.
func (m *Manager) Init(ctx context.Context, force bool) (*Config, error) {
	cfg := DefaultConfig()

	write := m.files.Create
	if force {
		write = m.files.Write
	}
	if err := write(ctx, m.configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsInitialized checks if a configuration file exists
func (m *Manager) IsInitialized() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// GetConfigPath returns the configuration file path
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// applyDefaults fills fields left empty in the file
func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Remote == "" {
		cfg.Remote = defaults.Remote
	}
	if cfg.Ignore.File == "" {
		cfg.Ignore.File = defaults.Ignore.File
	}
	if cfg.Commit.Message == "" {
		cfg.Commit.Message = defaults.Commit.Message
	}
	if cfg.Commit.IncludeTracked == nil {
		cfg.Commit.IncludeTracked = defaults.Commit.IncludeTracked
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
}
