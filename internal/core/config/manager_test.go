package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/twp/internal/filemanager"
)

func TestResolvePath(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv(EnvConfig, "/from/env.yaml")
		path, err := ResolvePath("/explicit.yaml")
		require.NoError(t, err)
		assert.Equal(t, "/explicit.yaml", path)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(EnvConfig, "/from/env.yaml")
		path, err := ResolvePath("")
		require.NoError(t, err)
		assert.Equal(t, "/from/env.yaml", path)
	})

	t.Run("user config dir", func(t *testing.T) {
		if os.Getenv("HOME") == "" {
			t.Skip("HOME not set")
		}
		xdg := t.TempDir()
		t.Setenv(EnvConfig, "")
		t.Setenv("XDG_CONFIG_HOME", xdg)
		path, err := ResolvePath("")
		require.NoError(t, err)

		dir, err := os.UserConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "twp", "config.yaml"), path)
	})
}

func TestManager_LoadMissingReturnsDefaults(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "config.yaml"))

	cfg, err := m.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, m.IsInitialized())
}

func TestManager_LoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `remote: upstream
ignore:
  patterns:
    - node_modules/
  seedDotfiles: true
commit:
  includeTracked: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := NewManager(path).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "upstream", cfg.Remote)
	assert.Equal(t, ".gitignore", cfg.Ignore.File)
	assert.Equal(t, "Save work via twp", cfg.Commit.Message)
	assert.False(t, cfg.Commit.Tracked(), "explicit false survives defaulting")

	opts := cfg.SaveOptions()
	assert.Equal(t, "upstream", opts.Remote)
	assert.Equal(t, []string{"node_modules/"}, opts.IgnorePatterns)
	assert.True(t, opts.SeedDotfiles)
	assert.False(t, opts.IncludeTracked)
}

func TestManager_LoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ignore:\n  file: a/b\n"), 0o644))

	_, err := NewManager(path).Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ignore.file")
}

func TestManager_InitAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twp", "config.yaml")
	m := NewManager(path)
	ctx := context.Background()

	_, err := m.Init(ctx, false)
	require.NoError(t, err)
	assert.True(t, m.IsInitialized())
	assert.Equal(t, path, m.GetConfigPath())

	_, err = m.Init(ctx, false)
	assert.True(t, errors.Is(err, filemanager.ErrExists))

	cfg, err := m.Load(ctx)
	require.NoError(t, err)
	cfg.Commit.Message = "checkpoint"
	require.NoError(t, m.Save(ctx, cfg))

	reloaded, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "checkpoint", reloaded.Commit.Message)

	_, err = m.Init(ctx, true)
	require.NoError(t, err)
	reloaded, err = m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Save work via twp", reloaded.Commit.Message)
}

func TestManager_SaveRejectsInvalid(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	cfg := DefaultConfig()
	cfg.Remote = ""

	assert.Error(t, m.Save(context.Background(), cfg))
	assert.False(t, m.IsInitialized())
}
