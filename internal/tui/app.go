// Package tui implements the scrollguard demo front end: a scrollable
// viewport acting as the shared surface, and stacked modal overlays acting
// as the uncoordinated lock holders. It exists to exercise the lock manager
// end to end; the manager itself never depends on it.
package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/scrollguard/internal/config"
	"github.com/Iron-Ham/scrollguard/internal/event"
	"github.com/Iron-Ham/scrollguard/internal/scrollock"
	"github.com/Iron-Ham/scrollguard/internal/surface"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	bus     *event.Bus
}

// New creates a new TUI application
func New(cfg *config.Config, bus *event.Bus, mgr *scrollock.Manager, surf *surface.Memo) *App {
	return &App{
		model: NewModel(cfg, bus, mgr, surf),
		bus:   bus,
	}
}

// Run starts the TUI application and blocks until it exits. Signals publish
// the shutdown event first so the lock manager's teardown hook runs before
// the program quits.
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		a.bus.Publish(event.NewShutdownEvent("signal"))
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()
	return err
}
