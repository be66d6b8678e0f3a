package scrollock

import (
	"github.com/Iron-Ham/scrollguard/internal/event"
)

// WireHooks subscribes the manager's emergency release paths to the
// process-wide bus. Overlay lifecycle events trigger a full release after
// the configured delay, letting any in-flight close animation finish first;
// shutdown triggers an immediate best-effort release. Full release rather
// than a reason-scoped unlock is intentional: these events mean the whole
// overlay subsystem is done, however many nested claims it holds.
//
// The returned function removes the subscriptions. Releases already
// scheduled still fire; ForceUnlock's idempotence makes them harmless.
func WireHooks(bus *event.Bus, m *Manager) (unwire func()) {
	ids := []string{
		bus.Subscribe(event.TypeOverlayCompleted, func(event.Event) {
			m.scheduleForceUnlock("overlay completed")
		}),
		bus.Subscribe(event.TypeOverlayClosed, func(event.Event) {
			m.scheduleForceUnlock("overlay closed")
		}),
		bus.Subscribe(event.TypeShutdown, func(event.Event) {
			m.ForceUnlock()
		}),
	}

	return func() {
		for _, id := range ids {
			bus.Unsubscribe(id)
		}
	}
}

// scheduleForceUnlock arranges a full release after the configured delay.
// Deliberately not cancellable: redundancy is absorbed by ForceUnlock's
// idempotence instead of timer management.
func (m *Manager) scheduleForceUnlock(trigger string) {
	if m.debug {
		m.log.Debug("full release scheduled", "trigger", trigger, "delay", m.releaseDelay)
	}
	m.after(m.releaseDelay, m.ForceUnlock)
}
