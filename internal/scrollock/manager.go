package scrollock

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/Iron-Ham/scrollguard/internal/event"
	"github.com/Iron-Ham/scrollguard/internal/logging"
	"github.com/Iron-Ham/scrollguard/internal/surface"
)

// UnknownReason is the claim identifier recorded when a caller passes an
// empty reason. The call still counts; the sentinel only keeps diagnostics
// honest.
const UnknownReason = "unknown"

// Default timing values, overridable via options. Both are empirical tuning
// knobs for the host platform, not correctness requirements.
const (
	DefaultGraceWindow  = 120 * time.Millisecond
	DefaultReleaseDelay = 250 * time.Millisecond
)

var (
	locksTotal        = metrics.GetOrCreateCounter("scrollguard_locks_total")
	unlocksTotal      = metrics.GetOrCreateCounter("scrollguard_unlocks_total")
	forceUnlocksTotal = metrics.GetOrCreateCounter("scrollguard_force_unlocks_total")
	repairsTotal      = metrics.GetOrCreateCounter("scrollguard_repairs_total")
)

// Status is a diagnostic snapshot of the lock state. Reasons is sorted for
// deterministic output; Count remains authoritative — the two can diverge
// when one reason locks more than once.
type Status struct {
	Count             int
	Reasons           []string
	Locked            bool
	SavedScrollOffset int
}

// Manager arbitrates suppression of one shared surface among uncoordinated
// claim holders. The zero value is not usable; construct with New, once per
// surface, and inject it where needed.
type Manager struct {
	mu                sync.Mutex
	count             int
	reasons           map[string]struct{}
	snapshot          surface.Style // style at the most recent 0->1 transition, diagnostic only
	savedScrollOffset int

	// immutable after New
	surf         surface.Surface
	baseline     surface.Style // restore always targets this, never snapshot
	bus          *event.Bus
	log          *logging.Logger
	debug        bool
	after        func(time.Duration, func())
	graceWindow  time.Duration
	releaseDelay time.Duration

	// releaseCheck, when set, runs inside release's critical section.
	// Tests use it to exercise the degraded full-release path.
	releaseCheck func()
}

// Option configures a Manager.
type Option func(*Manager)

// WithBus publishes lock transition events to the given bus.
func WithBus(bus *event.Bus) Option {
	return func(m *Manager) { m.bus = bus }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *logging.Logger) Option {
	return func(m *Manager) { m.log = log.WithComponent("scrollock") }
}

// WithDebug enables verbose per-operation diagnostics. Functional behavior
// is unchanged.
func WithDebug(debug bool) Option {
	return func(m *Manager) { m.debug = debug }
}

// WithGraceWindow sets the watchdog's repair grace window.
func WithGraceWindow(d time.Duration) Option {
	return func(m *Manager) { m.graceWindow = d }
}

// WithReleaseDelay sets the delay before an event-triggered full release.
func WithReleaseDelay(d time.Duration) Option {
	return func(m *Manager) { m.releaseDelay = d }
}

// WithAfterFunc replaces the timer used for deferred actions.
// Tests use this to fire timers deterministically.
func WithAfterFunc(after func(time.Duration, func())) Option {
	return func(m *Manager) { m.after = after }
}

// New creates a Manager for the given surface and captures its current style
// as the baseline that every restore targets. Call it once, at startup,
// while the surface is in its default state.
func New(surf surface.Surface, opts ...Option) *Manager {
	m := &Manager{
		surf:         surf,
		baseline:     surf.Style(),
		reasons:      make(map[string]struct{}),
		log:          logging.NopLogger(),
		after:        func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		graceWindow:  DefaultGraceWindow,
		releaseDelay: DefaultReleaseDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Lock registers one claim against the surface. The first outstanding claim
// saves the scroll position and applies the suppression transform; further
// claims only increment the count, so re-entrant and concurrent holders
// never compound the transform. Lock never fails: an empty reason is
// recorded as UnknownReason and the call proceeds.
func (m *Manager) Lock(reason string) {
	if reason == "" {
		reason = UnknownReason
	}

	m.mu.Lock()
	m.count++
	m.reasons[reason] = struct{}{}
	first := m.count == 1
	var offset int
	if first {
		offset = m.surf.ScrollOffset()
		m.savedScrollOffset = offset
		m.snapshot = m.surf.Style()
	}
	count := m.count
	m.mu.Unlock()

	locksTotal.Inc()

	// Surface mutation happens outside the mutex so notifier callbacks can
	// read the manager back without deadlocking.
	if first {
		m.surf.SetStyle(surface.Suppressed(m.baseline, offset))
		if m.bus != nil {
			m.bus.Publish(event.NewLockedEvent(reason))
		}
	}
	if m.debug {
		m.log.Debug("lock acquired", "reason", reason, "count", count, "first", first)
	}
}

// Unlock releases one claim. Releasing with no claims outstanding is a
// logged no-op, never an error — defensive double-unlock patterns are
// expected. When the last claim is released the surface is restored. If the
// bookkeeping itself fails, Unlock degrades to ForceUnlock: a stuck lock is
// the one outcome this type must never produce.
func (m *Manager) Unlock(reason string) {
	if reason == "" {
		reason = UnknownReason
	}

	last, offset, err := m.release(reason)
	if err != nil {
		m.log.Error("unlock bookkeeping failed, forcing full release", "reason", reason, "error", err)
		m.ForceUnlock()
		return
	}
	if last == noClaims {
		m.log.Info("unlock without matching lock ignored", "reason", reason)
		return
	}

	unlocksTotal.Inc()

	if last == lastClaim {
		m.applyBaseline(offset)
		if m.bus != nil {
			m.bus.Publish(event.NewUnlockedEvent(false))
		}
	}
	if m.debug {
		m.log.Debug("lock released", "reason", reason, "last", last == lastClaim)
	}
}

type releaseResult int

const (
	noClaims releaseResult = iota
	innerClaim
	lastClaim
)

// release performs Unlock's bookkeeping under the mutex, converting any
// panic into an error so the caller can degrade to ForceUnlock with the
// mutex already released.
func (m *Manager) release(reason string) (res releaseResult, offset int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("release %q: %v", reason, r)
		}
	}()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.releaseCheck != nil {
		m.releaseCheck()
	}

	if m.count == 0 {
		return noClaims, 0, nil
	}

	m.count--
	delete(m.reasons, reason)
	if m.count > 0 {
		return innerClaim, 0, nil
	}

	offset = m.savedScrollOffset
	m.savedScrollOffset = 0
	return lastClaim, offset, nil
}

// ForceUnlock unconditionally releases every claim and restores the surface.
// It is idempotent and safe to call at any time; it is the designated
// recovery primitive for teardown hooks, domain events and the error
// fallback in Unlock.
func (m *Manager) ForceUnlock() {
	m.mu.Lock()
	wasLocked := m.count > 0
	m.count = 0
	m.reasons = make(map[string]struct{})
	offset := m.savedScrollOffset
	m.savedScrollOffset = 0
	m.mu.Unlock()

	forceUnlocksTotal.Inc()

	m.applyBaseline(offset)
	if wasLocked {
		if m.bus != nil {
			m.bus.Publish(event.NewUnlockedEvent(true))
		}
		m.log.Info("forced full release", "restored_scroll_offset", offset)
	} else if m.debug {
		m.log.Debug("force unlock with no claims outstanding")
	}
}

// Restore reapplies the construction-time baseline and re-anchors the scroll
// position saved at the first lock. Redundant calls are harmless: the same
// baseline values are applied every time.
func (m *Manager) Restore() {
	m.mu.Lock()
	offset := m.savedScrollOffset
	m.savedScrollOffset = 0
	m.mu.Unlock()

	m.applyBaseline(offset)
}

// applyBaseline is the single path through which the surface returns to its
// default appearance. Restore, ForceUnlock and the watchdog's repair all
// route through it so "default" cannot diverge between them.
func (m *Manager) applyBaseline(scrollTo int) {
	m.surf.SetStyle(m.baseline)
	if scrollTo > 0 {
		m.surf.ScrollTo(scrollTo)
	}
}

// repair is the watchdog's entry point: restore the baseline without
// touching claim state. Claim state is untouched because count is already
// zero when repair runs.
func (m *Manager) repair() {
	repairsTotal.Inc()
	m.applyBaseline(0)
	if m.bus != nil {
		m.bus.Publish(event.NewRepairedEvent())
	}
}

// Locked reports whether any claims are outstanding.
func (m *Manager) Locked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count > 0
}

// Status returns a diagnostic snapshot of the lock state. It has no side
// effects.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	reasons := make([]string, 0, len(m.reasons))
	for r := range m.reasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)

	return Status{
		Count:             m.count,
		Reasons:           reasons,
		Locked:            m.count > 0,
		SavedScrollOffset: m.savedScrollOffset,
	}
}

// Baseline returns the style captured at construction.
func (m *Manager) Baseline() surface.Style {
	return m.baseline
}

// Snapshot returns the style captured at the most recent first lock.
// Diagnostic only; restore never targets it.
func (m *Manager) Snapshot() surface.Style {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}
