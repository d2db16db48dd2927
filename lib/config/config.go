// Package config holds configuration for the tsclient library and the tsctl
// command. Configuration is immutable once handed to a client; concurrent
// reads need no synchronization.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	// DefaultBinaryPath is the well-known install location of the
	// tailscale CLI on most Linux distributions.
	DefaultBinaryPath = "/usr/bin/tailscale"

	// DefaultFallbackPath is the secondary location checked by
	// Client.Available, covering manual installs and macOS setups that
	// symlink the CLI into /usr/local/bin.
	DefaultFallbackPath = "/usr/local/bin/tailscale"

	// DefaultTimeout of zero means invocations wait indefinitely; the
	// tailscale CLI is expected to return promptly.
	DefaultTimeout = 0 * time.Second
)

// Config holds all configuration for a tsclient.
type Config struct {
	Tailscale TailscaleConfig `toml:"tailscale"`
	Log       LogConfig       `toml:"log"`
}

// TailscaleConfig locates and bounds the external tailscale binary.
type TailscaleConfig struct {
	// BinaryPath is the primary path to the tailscale CLI.
	BinaryPath string `toml:"binary_path"`
	// FallbackPath is a secondary path consulted by availability checks.
	FallbackPath string `toml:"fallback_path"`
	// Timeout bounds each invocation. Zero disables the bound.
	Timeout time.Duration `toml:"timeout"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is a logrus level name ("debug", "info", "warn", "error").
	Level string `toml:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Tailscale: TailscaleConfig{
			BinaryPath:   DefaultBinaryPath,
			FallbackPath: DefaultFallbackPath,
			Timeout:      DefaultTimeout,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a TOML file.
// If the file doesn't exist, it returns the default configuration.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a TOML file.
// It creates the parent directory if it doesn't exist.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Tailscale.BinaryPath == "" {
		return errors.New("tailscale.binary_path is required")
	}
	if c.Tailscale.Timeout < 0 {
		return errors.New("tailscale.timeout must not be negative")
	}
	return nil
}
