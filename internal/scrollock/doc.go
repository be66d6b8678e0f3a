// Package scrollock implements a reference-counted exclusive lock over a
// shared scrollable surface, with a self-healing watchdog and lifecycle
// hooks for emergency release.
//
// Any number of uncoordinated callers (modal overlays, confirmation flows,
// transient UI) may hold the lock at once: the surface is suppressed on the
// first acquire and restored exactly once, when the last holder releases.
// Callers that crash, double-release or never release are tolerated — the
// design prioritizes the surface's final state over precise bookkeeping,
// so every failure path degrades to a full release rather than a stuck lock.
//
// # Main Types
//
//   - [Manager]: the lock state machine — Lock, Unlock, ForceUnlock, Restore, Status
//   - [Watchdog]: detects suppression applied behind the Manager's back and repairs it
//   - [Status]: diagnostic snapshot of the lock state
//
// # Basic Usage
//
//	surf := surface.NewMemo(surface.Style{Width: 80, Height: 24})
//	mgr := scrollock.New(surf, scrollock.WithLogger(log))
//
//	mgr.Lock("confirm-dialog")
//	defer mgr.Unlock("confirm-dialog")
//
// Concurrent holders compose without coordination:
//
//	mgr.Lock("A") // surface suppressed here
//	mgr.Lock("B") // no further mutation
//	mgr.Unlock("A")
//	mgr.Unlock("B") // surface restored here
//
// # Watchdog
//
// If the surface implements [surface.Notifier], a Watchdog can observe style
// mutations made by code that bypasses the Manager. When it sees the surface
// suppressed while no claims are outstanding it waits one grace window (so a
// legitimate Lock racing the observation is not reverted) and, if the count
// is still zero, restores the baseline and logs a warning. On surfaces that
// cannot be observed the Watchdog is inert and the Manager is unaffected.
//
// # Lifecycle Hooks
//
// WireHooks subscribes the Manager to the process-wide event bus:
// "overlay.completed" and "overlay.closed" trigger a full release after a
// short delay, and "app.shutdown" triggers an immediate best-effort release.
// These are deliberately blunt — the events mean the entire overlay
// subsystem is done, however many nested claims it accumulated.
package scrollock
