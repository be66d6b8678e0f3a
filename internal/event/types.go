// Package event provides a pub-sub event bus and the event types that
// decouple scrollguard's components. The lock manager publishes lock
// transitions, overlay flows publish their lifecycle, and the hooks in
// internal/scrollock consume both without direct dependencies.
package event

import "time"

// Event is the interface all events implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g. "overlay.closed", "scroll.locked").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers consumed or produced by the lock manager.
const (
	TypeOverlayCompleted = "overlay.completed"
	TypeOverlayClosed    = "overlay.closed"
	TypeShutdown         = "app.shutdown"
	TypeLocked           = "scroll.locked"
	TypeUnlocked         = "scroll.unlocked"
	TypeRepaired         = "scroll.repaired"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Overlay Lifecycle Events
// -----------------------------------------------------------------------------

// OverlayCompletedEvent is emitted when a blocking overlay flow finishes its
// work. The lock manager treats this as "the whole overlay subsystem is
// done" and schedules a full release.
type OverlayCompletedEvent struct {
	baseEvent
	OverlayID string // Identifier of the completed flow (diagnostic only)
}

// NewOverlayCompletedEvent creates an OverlayCompletedEvent.
func NewOverlayCompletedEvent(overlayID string) OverlayCompletedEvent {
	return OverlayCompletedEvent{
		baseEvent: newBaseEvent(TypeOverlayCompleted),
		OverlayID: overlayID,
	}
}

// OverlayClosedEvent is emitted when an overlay's container is torn down,
// regardless of whether its flow completed.
type OverlayClosedEvent struct {
	baseEvent
	OverlayID string // Identifier of the closed container (diagnostic only)
}

// NewOverlayClosedEvent creates an OverlayClosedEvent.
func NewOverlayClosedEvent(overlayID string) OverlayClosedEvent {
	return OverlayClosedEvent{
		baseEvent: newBaseEvent(TypeOverlayClosed),
		OverlayID: overlayID,
	}
}

// ShutdownEvent is emitted once at process teardown. Consumers must treat it
// as best-effort and never block.
type ShutdownEvent struct {
	baseEvent
	Reason string // e.g. "signal", "quit"
}

// NewShutdownEvent creates a ShutdownEvent.
func NewShutdownEvent(reason string) ShutdownEvent {
	return ShutdownEvent{
		baseEvent: newBaseEvent(TypeShutdown),
		Reason:    reason,
	}
}

// -----------------------------------------------------------------------------
// Lock Transition Events
// -----------------------------------------------------------------------------

// LockedEvent is emitted when the surface transitions from unlocked to
// locked (first outstanding claim).
type LockedEvent struct {
	baseEvent
	Reason string // Claim that triggered the transition
}

// NewLockedEvent creates a LockedEvent.
func NewLockedEvent(reason string) LockedEvent {
	return LockedEvent{
		baseEvent: newBaseEvent(TypeLocked),
		Reason:    reason,
	}
}

// UnlockedEvent is emitted when the last outstanding claim is released and
// the surface is restored.
type UnlockedEvent struct {
	baseEvent
	Forced bool // True when released via ForceUnlock rather than matched unlocks
}

// NewUnlockedEvent creates an UnlockedEvent.
func NewUnlockedEvent(forced bool) UnlockedEvent {
	return UnlockedEvent{
		baseEvent: newBaseEvent(TypeUnlocked),
		Forced:    forced,
	}
}

// RepairedEvent is emitted when the watchdog clears a suppression it did not
// hand out.
type RepairedEvent struct {
	baseEvent
}

// NewRepairedEvent creates a RepairedEvent.
func NewRepairedEvent() RepairedEvent {
	return RepairedEvent{baseEvent: newBaseEvent(TypeRepaired)}
}
