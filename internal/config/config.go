// Package config provides configuration management for dapview.
//
// Configuration controls:
//   - Capability mode (readonly vs full): determines which tools are available
//   - Workspace root: the directory source locations resolve against
//   - Debounce window: how aggressively repeated editor-open requests are
//     collapsed
//   - Notifications: whether thread-switch messages are pinned at all
//
// Configuration can be loaded from a JSON file or use sensible defaults.
// The readonly mode exposes only the query tools, while full mode also
// enables the action-publishing tools.
package config

import (
	"encoding/json"
	"os"
	"time"
)

// CapabilityMode defines the level of session control exposed
type CapabilityMode string

const (
	ModeReadOnly CapabilityMode = "readonly" // Query tools only
	ModeFull     CapabilityMode = "full"     // All tools enabled
)

// Config holds the dapview configuration
type Config struct {
	// Capability level
	Mode CapabilityMode `json:"mode"`

	// Workspace is the root directory relative source locations resolve
	// against
	Workspace string `json:"workspace"`

	// DebounceWindowMS collapses repeated editor-open requests arriving
	// within this many milliseconds into one
	DebounceWindowMS int `json:"debounceWindowMs"`

	// Notifications enables pinned thread-switch messages
	Notifications bool `json:"notifications"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return &Config{
		Mode:             ModeFull,
		Workspace:        wd,
		DebounceWindowMS: 100,
		Notifications:    true,
	}
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DebounceWindow returns the debounce window as a duration
func (c *Config) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceWindowMS) * time.Millisecond
}

// CanUseControlTools returns true if the action-publishing tools are enabled
func (c *Config) CanUseControlTools() bool {
	return c.Mode == ModeFull
}
