// Package config provides centralized configuration for keystr runtime values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the optional configuration file inside the keystr directory.
const FileName = "config.yaml"

// RuntimeConfig holds all runtime configuration values.
type RuntimeConfig struct {
	// Daemon configuration
	Daemon DaemonConfig `yaml:"daemon"`

	// Persistence configuration
	Persistence PersistenceConfig `yaml:"persistence"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage"`

	// Stats configuration
	Stats StatsConfig `yaml:"stats"`

	// LogLevel is the daemon log verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// DaemonConfig holds daemon-related configuration.
type DaemonConfig struct {
	// StartupWait is the time to wait for the daemon to register its PID
	// before start reports the result.
	// Default: 500ms
	StartupWait time.Duration `yaml:"startup_wait"`

	// KillTimeout is the timeout for graceful shutdown before force kill.
	// Default: 5s
	KillTimeout time.Duration `yaml:"kill_timeout"`

	// HookTimeout bounds how long the daemon waits for the keyboard hook to
	// report that it is installed.
	// Default: 2s
	HookTimeout time.Duration `yaml:"hook_timeout"`
}

// PersistenceConfig controls how often the daemon writes to disk.
type PersistenceConfig struct {
	// SaveEvery is the number of key presses between periodic saves.
	// Default: 10
	SaveEvery uint64 `yaml:"save_every"`
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// MinFreeSpace is the minimum free space required for write operations.
	// Default: 1MB
	MinFreeSpace uint64 `yaml:"min_free_space"`
}

// StatsConfig holds reporting configuration.
type StatsConfig struct {
	// DailyDays is the number of days shown by the daily view.
	// Default: 7
	DailyDays int `yaml:"daily_days"`
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Daemon: DaemonConfig{
			StartupWait: 500 * time.Millisecond,
			KillTimeout: 5 * time.Second,
			HookTimeout: 2 * time.Second,
		},
		Persistence: PersistenceConfig{
			SaveEvery: 10,
		},
		Storage: StorageConfig{
			MinFreeSpace: 1024 * 1024, // 1MB
		},
		Stats: StatsConfig{
			DailyDays: 7,
		},
		LogLevel: "info",
	}
}

// Global holds the global runtime configuration instance.
// It starts from defaults plus environment overrides; commands replace it
// with the result of Load once the config directory is known.
var Global = initGlobal()

// initGlobal initializes the global config with defaults and environment overrides.
func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// Load builds a configuration from defaults, the YAML file at path (if it
// exists) and environment variables, in that order of precedence.
func Load(path string) (*RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *RuntimeConfig) Validate() error {
	if c.Daemon.StartupWait < 0 {
		return fmt.Errorf("daemon.startup_wait cannot be negative")
	}
	if c.Daemon.KillTimeout <= 0 {
		return fmt.Errorf("daemon.kill_timeout must be positive")
	}
	if c.Daemon.HookTimeout <= 0 {
		return fmt.Errorf("daemon.hook_timeout must be positive")
	}
	if c.Persistence.SaveEvery == 0 {
		return fmt.Errorf("persistence.save_every must be at least 1")
	}
	if c.Stats.DailyDays < 1 {
		return fmt.Errorf("stats.daily_days must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}

	return nil
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	// Daemon configuration
	if v := os.Getenv("KEYSTR_DAEMON_STARTUP_WAIT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Daemon.StartupWait = d
		}
	}
	if v := os.Getenv("KEYSTR_DAEMON_KILL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Daemon.KillTimeout = d
		}
	}
	if v := os.Getenv("KEYSTR_HOOK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Daemon.HookTimeout = d
		}
	}

	// Persistence configuration
	if v := os.Getenv("KEYSTR_SAVE_EVERY"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			c.Persistence.SaveEvery = n
		}
	}

	// Storage configuration
	if v := os.Getenv("KEYSTR_MIN_FREE_SPACE"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Storage.MinFreeSpace = n
		}
	}

	// Stats configuration
	if v := os.Getenv("KEYSTR_DAILY_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Stats.DailyDays = n
		}
	}

	if v := os.Getenv("KEYSTR_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// ReloadFromEnv reloads configuration from environment variables.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}
