package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ModeFull, cfg.Mode)
	assert.True(t, cfg.CanUseControlTools())
	assert.Equal(t, 100*time.Millisecond, cfg.DebounceWindow())
	assert.True(t, cfg.Notifications)
	assert.NotEmpty(t, cfg.Workspace)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"mode": "readonly",
		"workspace": "/src/project",
		"debounceWindowMs": 250,
		"notifications": false
	}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ModeReadOnly, cfg.Mode)
	assert.False(t, cfg.CanUseControlTools())
	assert.Equal(t, "/src/project", cfg.Workspace)
	assert.Equal(t, 250*time.Millisecond, cfg.DebounceWindow())
	assert.False(t, cfg.Notifications)
}

func TestLoadConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ModeFull, cfg.Mode)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}
