package config

import (
	"fmt"
	"strings"

	"github.com/aki/twp/internal/core/logger"
)

// ValidateConfig validates the entire configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}

	if err := ValidateRemote(config.Remote); err != nil {
		return fmt.Errorf("invalid remote: %w", err)
	}
	if err := ValidateIgnoreFile(config.Ignore.File); err != nil {
		return fmt.Errorf("invalid ignore.file: %w", err)
	}
	if _, err := logger.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	if _, err := logger.ParseFormat(config.Log.Format); err != nil {
		return fmt.Errorf("invalid log.format: %w", err)
	}

	return nil
}

// ValidateRemote checks that name can be passed to git as a remote name
func ValidateRemote(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.ContainsAny(name, " \t\n") || strings.HasPrefix(name, "-") {
		return fmt.Errorf("%q is not a valid remote name", name)
	}
	return nil
}

// ValidateIgnoreFile checks that name is a plain file name at the working tree root
func ValidateIgnoreFile(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%q must be a file name without directories", name)
	}
	return nil
}
