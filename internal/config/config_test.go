package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Lock.GraceWindowMs != 120 {
		t.Errorf("Lock.GraceWindowMs = %d, want 120", cfg.Lock.GraceWindowMs)
	}
	if cfg.Lock.ReleaseDelayMs != 250 {
		t.Errorf("Lock.ReleaseDelayMs = %d, want 250", cfg.Lock.ReleaseDelayMs)
	}
	if cfg.Lock.Debug {
		t.Error("Lock.Debug should be false by default")
	}

	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}

	if cfg.TUI.ContentLines != 200 {
		t.Errorf("TUI.ContentLines = %d, want 200", cfg.TUI.ContentLines)
	}
}

func TestDurationAccessors(t *testing.T) {
	cfg := Default()

	if got := cfg.Lock.GraceWindow(); got != 120*time.Millisecond {
		t.Errorf("GraceWindow() = %v, want 120ms", got)
	}
	if got := cfg.Lock.ReleaseDelay(); got != 250*time.Millisecond {
		t.Errorf("ReleaseDelay() = %v, want 250ms", got)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadWithOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	viper.Set("lock.grace_window_ms", 500)
	viper.Set("lock.debug", true)
	viper.Set("logging.level", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Lock.GraceWindowMs != 500 {
		t.Errorf("Lock.GraceWindowMs = %d, want 500", cfg.Lock.GraceWindowMs)
	}
	if !cfg.Lock.Debug {
		t.Error("Lock.Debug should be true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	// Untouched keys keep their defaults.
	if cfg.Lock.ReleaseDelayMs != 250 {
		t.Errorf("Lock.ReleaseDelayMs = %d, want default 250", cfg.Lock.ReleaseDelayMs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "negative grace window",
			mutate:  func(c *Config) { c.Lock.GraceWindowMs = -1 },
			wantErr: "grace_window_ms",
		},
		{
			name:    "negative release delay",
			mutate:  func(c *Config) { c.Lock.ReleaseDelayMs = -10 },
			wantErr: "release_delay_ms",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
		{
			name:    "zero content lines",
			mutate:  func(c *Config) { c.TUI.ContentLines = 0 },
			wantErr: "content_lines",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Errorf("Validate() = %v, want no errors", errs)
				}
				return
			}

			if len(errs) == 0 {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			combined := ValidationErrors(errs).Error()
			if !strings.Contains(combined, tt.wantErr) {
				t.Errorf("Validate() = %q, want mention of %q", combined, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	viper.Set("lock.grace_window_ms", -5)

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a negative grace window")
	}
}

func TestConfigDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	want := filepath.Join("/tmp/xdg-config", "scrollguard")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
	if got := ConfigFile(); got != filepath.Join(want, "config.yaml") {
		t.Errorf("ConfigFile() = %q, want %q", got, filepath.Join(want, "config.yaml"))
	}
}

func TestStateDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")

	want := filepath.Join("/tmp/xdg-state", "scrollguard")
	if got := StateDir(); got != want {
		t.Errorf("StateDir() = %q, want %q", got, want)
	}
}
