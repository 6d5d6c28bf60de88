package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()

	if cfg.Daemon.StartupWait != 500*time.Millisecond {
		t.Errorf("expected Daemon.StartupWait = 500ms, got %v", cfg.Daemon.StartupWait)
	}
	if cfg.Daemon.KillTimeout != 5*time.Second {
		t.Errorf("expected Daemon.KillTimeout = 5s, got %v", cfg.Daemon.KillTimeout)
	}
	if cfg.Daemon.HookTimeout != 2*time.Second {
		t.Errorf("expected Daemon.HookTimeout = 2s, got %v", cfg.Daemon.HookTimeout)
	}
	if cfg.Persistence.SaveEvery != 10 {
		t.Errorf("expected Persistence.SaveEvery = 10, got %d", cfg.Persistence.SaveEvery)
	}
	if cfg.Stats.DailyDays != 7 {
		t.Errorf("expected Stats.DailyDays = 7, got %d", cfg.Stats.DailyDays)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel = info, got %q", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestGlobalConfigExists(t *testing.T) {
	if Global == nil {
		t.Fatal("Global config should not be nil")
	}
}

func TestConfigReset(t *testing.T) {
	originalCfg := *Global
	defer func() {
		*Global = originalCfg
	}()

	Global.Persistence.SaveEvery = 99
	Global.Reset()

	if Global.Persistence.SaveEvery != 10 {
		t.Errorf("expected SaveEvery = 10 after reset, got %d", Global.Persistence.SaveEvery)
	}
}

func TestConfigLoadFromEnv(t *testing.T) {
	t.Setenv("KEYSTR_DAEMON_STARTUP_WAIT", "2s")
	t.Setenv("KEYSTR_DAEMON_KILL_TIMEOUT", "10s")
	t.Setenv("KEYSTR_HOOK_TIMEOUT", "750ms")
	t.Setenv("KEYSTR_SAVE_EVERY", "25")
	t.Setenv("KEYSTR_DAILY_DAYS", "14")
	t.Setenv("KEYSTR_LOG_LEVEL", "debug")

	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()

	if cfg.Daemon.StartupWait != 2*time.Second {
		t.Errorf("expected StartupWait = 2s from env, got %v", cfg.Daemon.StartupWait)
	}
	if cfg.Daemon.KillTimeout != 10*time.Second {
		t.Errorf("expected KillTimeout = 10s from env, got %v", cfg.Daemon.KillTimeout)
	}
	if cfg.Daemon.HookTimeout != 750*time.Millisecond {
		t.Errorf("expected HookTimeout = 750ms from env, got %v", cfg.Daemon.HookTimeout)
	}
	if cfg.Persistence.SaveEvery != 25 {
		t.Errorf("expected SaveEvery = 25 from env, got %d", cfg.Persistence.SaveEvery)
	}
	if cfg.Stats.DailyDays != 14 {
		t.Errorf("expected DailyDays = 14 from env, got %d", cfg.Stats.DailyDays)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel = debug from env, got %q", cfg.LogLevel)
	}
}

func TestConfigLoadFromEnvInvalidValues(t *testing.T) {
	t.Setenv("KEYSTR_DAEMON_KILL_TIMEOUT", "invalid")
	t.Setenv("KEYSTR_SAVE_EVERY", "0")
	t.Setenv("KEYSTR_DAILY_DAYS", "not-a-number")

	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()

	if cfg.Daemon.KillTimeout != 5*time.Second {
		t.Errorf("expected KillTimeout = 5s (default), got %v", cfg.Daemon.KillTimeout)
	}
	if cfg.Persistence.SaveEvery != 10 {
		t.Errorf("expected SaveEvery = 10 (default), got %d", cfg.Persistence.SaveEvery)
	}
	if cfg.Stats.DailyDays != 7 {
		t.Errorf("expected DailyDays = 7 (default), got %d", cfg.Stats.DailyDays)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("missing config file should not fail: %v", err)
	}
	if cfg.Persistence.SaveEvery != 10 {
		t.Errorf("expected default SaveEvery, got %d", cfg.Persistence.SaveEvery)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `daemon:
  startup_wait: 1s
  kill_timeout: 3s
persistence:
  save_every: 50
stats:
  daily_days: 10
log_level: warn
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Daemon.StartupWait != time.Second {
		t.Errorf("expected StartupWait = 1s, got %v", cfg.Daemon.StartupWait)
	}
	if cfg.Daemon.KillTimeout != 3*time.Second {
		t.Errorf("expected KillTimeout = 3s, got %v", cfg.Daemon.KillTimeout)
	}
	if cfg.Persistence.SaveEvery != 50 {
		t.Errorf("expected SaveEvery = 50, got %d", cfg.Persistence.SaveEvery)
	}
	if cfg.Stats.DailyDays != 10 {
		t.Errorf("expected DailyDays = 10, got %d", cfg.Stats.DailyDays)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected LogLevel = warn, got %q", cfg.LogLevel)
	}
	// Unset keys keep their defaults.
	if cfg.Storage.MinFreeSpace != 1024*1024 {
		t.Errorf("expected default MinFreeSpace, got %d", cfg.Storage.MinFreeSpace)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("persistence:\n  save_every: 50\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KEYSTR_SAVE_EVERY", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Persistence.SaveEvery != 5 {
		t.Errorf("expected env to win, got %d", cfg.Persistence.SaveEvery)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	t.Run("malformed_yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("daemon: [unclosed"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("invalid_values", func(t *testing.T) {
		path := filepath.Join(dir, "zero.yaml")
		if err := os.WriteFile(path, []byte("persistence:\n  save_every: 0\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RuntimeConfig)
	}{
		{"negative_startup_wait", func(c *RuntimeConfig) { c.Daemon.StartupWait = -time.Second }},
		{"zero_kill_timeout", func(c *RuntimeConfig) { c.Daemon.KillTimeout = 0 }},
		{"zero_hook_timeout", func(c *RuntimeConfig) { c.Daemon.HookTimeout = 0 }},
		{"zero_save_every", func(c *RuntimeConfig) { c.Persistence.SaveEvery = 0 }},
		{"zero_daily_days", func(c *RuntimeConfig) { c.Stats.DailyDays = 0 }},
		{"bad_log_level", func(c *RuntimeConfig) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRuntimeConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}
