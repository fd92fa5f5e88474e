package config

import (
	"github.com/aki/twp/internal/core/ignore"
	"github.com/aki/twp/internal/core/save"
)

// CurrentVersion is written to new configuration files
const CurrentVersion = "1"

// Config represents the twp configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	Remote  string       `yaml:"remote" json:"remote"`
	Ignore  IgnoreConfig `yaml:"ignore" json:"ignore"`
	Commit  CommitConfig `yaml:"commit" json:"commit"`
	Log     LogConfig    `yaml:"log" json:"log"`
}

// IgnoreConfig controls the ignore file created by `twp save`
type IgnoreConfig struct {
	File         string   `yaml:"file" json:"file"`
	Patterns     []string `yaml:"patterns,omitempty" json:"patterns,omitempty"`
	SeedDotfiles bool     `yaml:"seedDotfiles" json:"seedDotfiles"`
}

// CommitConfig controls the commit made by `twp save`
type CommitConfig struct {
	Message string `yaml:"message" json:"message"`
	// IncludeTracked is a pointer so that an explicit false survives defaulting
	IncludeTracked *bool `yaml:"includeTracked,omitempty" json:"includeTracked,omitempty"`
}

// Tracked reports whether modifications to tracked files are staged
func (c CommitConfig) Tracked() bool {
	return c.IncludeTracked == nil || *c.IncludeTracked
}

// LogConfig sets the default log level and format
type LogConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// DefaultConfig returns the default twp configuration
func DefaultConfig() *Config {
	includeTracked := true
	return &Config{
		Version: CurrentVersion,
		Remote:  save.DefaultRemote,
		Ignore: IgnoreConfig{
			File: ignore.DefaultFile,
		},
		Commit: CommitConfig{
			Message:        save.DefaultMessage,
			IncludeTracked: &includeTracked,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// SaveOptions converts the configuration into options for one save run
func (c *Config) SaveOptions() save.Options {
	return save.Options{
		Remote:         c.Remote,
		IgnoreFile:     c.Ignore.File,
		Message:        c.Commit.Message,
		IgnorePatterns: c.Ignore.Patterns,
		SeedDotfiles:   c.Ignore.SeedDotfiles,
		IncludeTracked: c.Commit.Tracked(),
	}
}
