// Package config loads scrollguard configuration from files, environment
// variables and defaults via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the complete scrollguard configuration
type Config struct {
	Lock    LockConfig    `mapstructure:"lock"`
	Logging LoggingConfig `mapstructure:"logging"`
	TUI     TUIConfig     `mapstructure:"tui"`
}

// LockConfig controls the lock manager and watchdog timing behavior.
// The two delays are platform-tuning knobs, not invariants: the grace window
// only needs to outlast a typical lock-acquire burst, and the release delay
// only needs to outlast an overlay close animation.
type LockConfig struct {
	// GraceWindowMs is the delay between the watchdog detecting an
	// unauthorized suppression and repairing it (default: 120)
	GraceWindowMs int `mapstructure:"grace_window_ms"`
	// ReleaseDelayMs is the delay before a full release triggered by an
	// overlay lifecycle event (default: 250)
	ReleaseDelayMs int `mapstructure:"release_delay_ms"`
	// Debug enables verbose lock diagnostics. Functional behavior is
	// identical with or without it (default: false)
	Debug bool `mapstructure:"debug"`
}

// GraceWindow returns the watchdog grace window as a time.Duration
func (c *LockConfig) GraceWindow() time.Duration {
	return time.Duration(c.GraceWindowMs) * time.Millisecond
}

// ReleaseDelay returns the delayed-release delay as a time.Duration
func (c *LockConfig) ReleaseDelay() time.Duration {
	return time.Duration(c.ReleaseDelayMs) * time.Millisecond
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether file logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory for log files. Empty means the state directory
	Dir string `mapstructure:"dir"`
}

// TUIConfig controls the demo TUI behavior
type TUIConfig struct {
	// ContentLines is how many lines of demo content to fill the viewport with (default: 200)
	ContentLines int `mapstructure:"content_lines"`
	// Theme is the color theme for the TUI (default: "default")
	Theme string `mapstructure:"theme"`
}

// Default returns a Config populated with default values
func Default() *Config {
	return &Config{
		Lock: LockConfig{
			GraceWindowMs:  120,
			ReleaseDelayMs: 250,
			Debug:          false,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
		TUI: TUIConfig{
			ContentLines: 200,
			Theme:        "default",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("lock.grace_window_ms", defaults.Lock.GraceWindowMs)
	viper.SetDefault("lock.release_delay_ms", defaults.Lock.ReleaseDelayMs)
	viper.SetDefault("lock.debug", defaults.Lock.Debug)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	viper.SetDefault("tui.content_lines", defaults.TUI.ContentLines)
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
}

// LoadEnvFile loads a .env file from the working directory into the process
// environment so viper's AutomaticEnv picks the values up. A missing file is
// not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if
// unmarshaling fails
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks the configuration for invalid values and returns all
// problems found
func (c *Config) Validate() []error {
	var errs []error

	if c.Lock.GraceWindowMs < 0 {
		errs = append(errs, fmt.Errorf("lock.grace_window_ms must be >= 0, got %d", c.Lock.GraceWindowMs))
	}
	if c.Lock.ReleaseDelayMs < 0 {
		errs = append(errs, fmt.Errorf("lock.release_delay_ms must be >= 0, got %d", c.Lock.ReleaseDelayMs))
	}
	if level := strings.ToLower(c.Logging.Level); level != "debug" && level != "info" && level != "warn" && level != "error" {
		errs = append(errs, fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level))
	}
	if c.TUI.ContentLines <= 0 {
		errs = append(errs, fmt.Errorf("tui.content_lines must be > 0, got %d", c.TUI.ContentLines))
	}

	return errs
}

// ValidationErrors aggregates multiple validation failures into one error
type ValidationErrors []error

// Error implements the error interface
func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scrollguard")
	}
	// Fall back to ~/.config/scrollguard
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scrollguard"
	}
	return filepath.Join(home, ".config", "scrollguard")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateDir returns the directory for runtime state (log files, the
// single-instance lockfile)
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "scrollguard")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scrollguard"
	}
	return filepath.Join(home, ".local", "state", "scrollguard")
}
