package scrollock

import (
	"errors"
	"testing"

	"github.com/Iron-Ham/scrollguard/internal/event"
	"github.com/Iron-Ham/scrollguard/internal/logging"
	"github.com/Iron-Ham/scrollguard/internal/surface"
)

// deafSurface implements Surface but not Notifier.
type deafSurface struct {
	style  surface.Style
	offset int
}

func (d *deafSurface) Style() surface.Style         { return d.style }
func (d *deafSurface) SetStyle(style surface.Style) { d.style = style }
func (d *deafSurface) ScrollOffset() int            { return d.offset }
func (d *deafSurface) ScrollTo(offset int)          { d.offset = offset }

func newWatchdogFixture(t *testing.T) (*Manager, *surface.Memo, *Watchdog, *timerQueue, *event.Bus) {
	t.Helper()

	timers := &timerQueue{}
	bus := event.NewBus()
	surf := surface.NewMemo(testBaseline)
	mgr := New(surf, WithBus(bus), WithAfterFunc(timers.after))

	wd := NewWatchdog(mgr, logging.NopLogger())
	if err := wd.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(wd.Stop)

	return mgr, surf, wd, timers, bus
}

func TestWatchdogRepairsExternalSuppression(t *testing.T) {
	mgr, surf, _, timers, bus := newWatchdogFixture(t)

	repaired := false
	bus.Subscribe(event.TypeRepaired, func(event.Event) {
		repaired = true
	})

	// Someone applies the suppression transform behind the manager's back.
	surf.SetStyle(surface.Suppressed(testBaseline, 0))

	if len(timers.fns) != 1 {
		t.Fatalf("pending re-checks = %d, want 1", len(timers.fns))
	}
	if got := surf.Style(); got.Scroll != surface.ScrollHidden {
		t.Fatal("repair must wait for the grace window, not fire immediately")
	}

	timers.fire()

	if got := surf.Style(); got != testBaseline {
		t.Errorf("style after repair = %+v, want baseline %+v", got, testBaseline)
	}
	if !repaired {
		t.Error("expected a scroll.repaired event")
	}
	if mgr.Status().Locked {
		t.Error("repair must not touch claim state")
	}
}

func TestWatchdogGraceWindowLetsLegitimateLockWin(t *testing.T) {
	mgr, surf, _, timers, bus := newWatchdogFixture(t)

	repaired := false
	bus.Subscribe(event.TypeRepaired, func(event.Event) {
		repaired = true
	})

	surf.SetStyle(surface.Suppressed(testBaseline, 0))
	if len(timers.fns) != 1 {
		t.Fatalf("pending re-checks = %d, want 1", len(timers.fns))
	}

	// A legitimate lock arrives inside the grace window. The re-check must
	// re-read the count at fire time, not trust the value it saw earlier.
	mgr.Lock("late-modal")
	timers.fire()

	if got := surf.Style(); got.Scroll != surface.ScrollHidden {
		t.Errorf("style = %+v, want suppression preserved for the live lock", got)
	}
	if repaired {
		t.Error("repair fired despite an outstanding claim")
	}
}

func TestWatchdogIgnoresManagerMutations(t *testing.T) {
	mgr, _, _, timers, _ := newWatchdogFixture(t)

	mgr.Lock("A")
	mgr.Lock("B")
	mgr.Unlock("A")
	mgr.Unlock("B")
	mgr.ForceUnlock()

	if len(timers.fns) != 0 {
		t.Errorf("pending re-checks = %d, want 0 for manager-driven mutations", len(timers.fns))
	}
}

func TestWatchdogIgnoresBenignStyleChanges(t *testing.T) {
	_, surf, _, timers, _ := newWatchdogFixture(t)

	// A resize is not a suppression.
	resized := testBaseline
	resized.Width = 120
	surf.SetStyle(resized)

	if len(timers.fns) != 0 {
		t.Errorf("pending re-checks = %d, want 0 for a non-suppressing change", len(timers.fns))
	}
}

func TestWatchdogStop(t *testing.T) {
	_, surf, wd, timers, _ := newWatchdogFixture(t)

	wd.Stop()
	surf.SetStyle(surface.Suppressed(testBaseline, 0))

	if len(timers.fns) != 0 {
		t.Errorf("pending re-checks = %d, want 0 after Stop", len(timers.fns))
	}
}

func TestWatchdogUnsupportedSurface(t *testing.T) {
	surf := &deafSurface{style: testBaseline}
	mgr := New(surf)

	wd := NewWatchdog(mgr, logging.NopLogger())
	err := wd.Start()
	if !errors.Is(err, surface.ErrNotifyUnsupported) {
		t.Fatalf("Start() error = %v, want ErrNotifyUnsupported", err)
	}

	// The manager works unguarded.
	mgr.Lock("A")
	if !mgr.Status().Locked {
		t.Error("manager should operate normally without a watchdog")
	}
	mgr.Unlock("A")
	if got := surf.Style(); got != testBaseline {
		t.Errorf("style = %+v, want baseline", got)
	}
}

func TestWatchdogRepeatedExternalSuppression(t *testing.T) {
	_, surf, _, timers, _ := newWatchdogFixture(t)

	surf.SetStyle(surface.Suppressed(testBaseline, 0))
	timers.fire()
	if got := surf.Style(); got != testBaseline {
		t.Fatalf("first repair failed: %+v", got)
	}

	// The rogue code tries again; the watchdog keeps repairing.
	surf.SetStyle(surface.Suppressed(testBaseline, 0))
	timers.fire()
	if got := surf.Style(); got != testBaseline {
		t.Errorf("second repair failed: %+v", got)
	}
}
