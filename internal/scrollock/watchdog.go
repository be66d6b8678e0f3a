package scrollock

import (
	"github.com/Iron-Ham/scrollguard/internal/logging"
	"github.com/Iron-Ham/scrollguard/internal/surface"
)

// Watchdog detects suppression applied to the surface by code that bypasses
// the Manager, and undoes it. It is event-driven: the surface's Notifier
// delivers style changes, and a change to scroll-hidden while no claims are
// outstanding schedules a delayed re-check rather than an immediate repair.
// The grace window exists so a legitimate Lock racing the observation is not
// reverted; at re-check time the count is read again, and a repair only
// fires if it is still zero.
type Watchdog struct {
	mgr    *Manager
	log    *logging.Logger
	cancel func()
}

// NewWatchdog creates a Watchdog for the given manager's surface.
func NewWatchdog(mgr *Manager, log *logging.Logger) *Watchdog {
	return &Watchdog{
		mgr: mgr,
		log: log.WithComponent("watchdog"),
	}
}

// Start begins observing the surface. If the surface cannot report style
// changes the Watchdog stays inert and Start returns the reason; the Manager
// is unaffected either way.
func (w *Watchdog) Start() error {
	notifier, ok := w.mgr.surf.(surface.Notifier)
	if !ok {
		return surface.ErrNotifyUnsupported
	}

	cancel, err := notifier.Notify(w.onStyleChange)
	if err != nil {
		return err
	}
	w.cancel = cancel
	return nil
}

// Stop cancels observation. Re-checks already scheduled still run; their
// count re-read makes redundant firing harmless.
func (w *Watchdog) Stop() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

// onStyleChange runs on every surface style mutation, including the
// Manager's own. Only an unauthorized suppression — scroll hidden while the
// count is zero — arms the re-check.
func (w *Watchdog) onStyleChange(style surface.Style) {
	if style.Scroll != surface.ScrollHidden {
		return
	}
	if w.mgr.Locked() {
		return
	}

	w.mgr.after(w.mgr.graceWindow, w.recheck)
}

// recheck runs one grace window after an unauthorized suppression was
// observed. The count must be re-read here, never captured at scheduling
// time: any number of Lock/Unlock calls may have run in between.
func (w *Watchdog) recheck() {
	if w.mgr.Locked() {
		// A legitimate lock arrived inside the grace window.
		return
	}

	w.log.Warn("surface suppressed outside the lock manager, restoring baseline")
	w.mgr.repair()
}
