package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/scrollguard/internal/config"
	"github.com/Iron-Ham/scrollguard/internal/event"
	"github.com/Iron-Ham/scrollguard/internal/logging"
	"github.com/Iron-Ham/scrollguard/internal/scrollock"
	"github.com/Iron-Ham/scrollguard/internal/surface"
	"github.com/Iron-Ham/scrollguard/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the scrollguard demo TUI",
	Long: `Run launches a scrollable viewport guarded by the lock manager.
Overlays opened from the keyboard acquire and release scroll locks; a rogue
suppression can be injected to watch the watchdog repair it.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close() //nolint:errcheck

	// One scrollguard per terminal: the surface is a per-process resource
	// and two managers fighting over one terminal would defeat the point.
	release, err := acquireInstanceLock()
	if err != nil {
		return err
	}
	defer release()

	bus := event.NewBus()
	surf := surface.NewMemo(surface.Style{})

	mgr := scrollock.New(surf,
		scrollock.WithBus(bus),
		scrollock.WithLogger(log),
		scrollock.WithDebug(cfg.Lock.Debug),
		scrollock.WithGraceWindow(cfg.Lock.GraceWindow()),
		scrollock.WithReleaseDelay(cfg.Lock.ReleaseDelay()),
	)

	unwire := scrollock.WireHooks(bus, mgr)
	defer unwire()

	wd := scrollock.NewWatchdog(mgr, log)
	if err := wd.Start(); err != nil {
		// Degraded but functional: the manager works without its watchdog.
		log.Warn("watchdog disabled", "error", err.Error())
	} else {
		defer wd.Stop()
	}

	if cfg.Lock.Debug {
		bus.SubscribeAll(func(e event.Event) {
			log.Debug("event", "type", e.EventType())
		})
	}

	log.Info("scrollguard starting",
		"grace_window", cfg.Lock.GraceWindow().String(),
		"release_delay", cfg.Lock.ReleaseDelay().String(),
		"debug", cfg.Lock.Debug)

	app := tui.New(cfg, bus, mgr, surf)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// newLogger builds the file logger from config, falling back to a no-op
// logger when file logging is disabled.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}

	dir := cfg.Logging.Dir
	if dir == "" {
		dir = config.StateDir()
	}

	level := cfg.Logging.Level
	if cfg.Lock.Debug {
		level = logging.LevelDebug
	}

	log, err := logging.NewLogger(dir, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// acquireInstanceLock takes an advisory file lock so only one scrollguard
// runs per user. The returned function releases it.
func acquireInstanceLock() (func(), error) {
	dir := config.StateDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	fl := flock.New(filepath.Join(dir, "scrollguard.lock"))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire instance lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another scrollguard instance is already running")
	}

	return func() { _ = fl.Unlock() }, nil
}
