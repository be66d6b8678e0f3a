package surface

import "testing"

func TestSuppressed(t *testing.T) {
	baseline := Style{Scroll: ScrollAuto, Anchor: AnchorFlow, Width: 80, Height: 24}

	tests := []struct {
		name         string
		scrollOffset int
		wantTop      int
	}{
		{name: "at top", scrollOffset: 0, wantTop: 0},
		{name: "scrolled", scrollOffset: 35, wantTop: -35},
		{name: "deep scroll", scrollOffset: 900, wantTop: -900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suppressed(baseline, tt.scrollOffset)

			if got.Scroll != ScrollHidden {
				t.Errorf("Scroll = %v, want hidden", got.Scroll)
			}
			if got.Anchor != AnchorPinned {
				t.Errorf("Anchor = %v, want pinned", got.Anchor)
			}
			if got.TopOffset != tt.wantTop {
				t.Errorf("TopOffset = %d, want %d", got.TopOffset, tt.wantTop)
			}
			if got.Width != baseline.Width || got.Height != baseline.Height {
				t.Errorf("dimensions = %dx%d, want baseline %dx%d", got.Width, got.Height, baseline.Width, baseline.Height)
			}
		})
	}
}

func TestSuppressedDoesNotMutateBaseline(t *testing.T) {
	baseline := Style{Scroll: ScrollAuto, Width: 80}
	_ = Suppressed(baseline, 10)

	if baseline.Scroll != ScrollAuto || baseline.TopOffset != 0 {
		t.Errorf("baseline mutated: %+v", baseline)
	}
}

func TestMemoStyle(t *testing.T) {
	initial := Style{Scroll: ScrollAuto, Width: 80, Height: 24}
	m := NewMemo(initial)

	if got := m.Style(); got != initial {
		t.Errorf("Style() = %+v, want %+v", got, initial)
	}

	next := Suppressed(initial, 5)
	m.SetStyle(next)
	if got := m.Style(); got != next {
		t.Errorf("Style() = %+v, want %+v", got, next)
	}
}

func TestMemoScroll(t *testing.T) {
	m := NewMemo(Style{})

	m.ScrollTo(17)
	if got := m.ScrollOffset(); got != 17 {
		t.Errorf("ScrollOffset() = %d, want 17", got)
	}

	m.ScrollTo(-4)
	if got := m.ScrollOffset(); got != 0 {
		t.Errorf("ScrollOffset() = %d, want 0 (negative clamps)", got)
	}
}

func TestMemoNotify(t *testing.T) {
	m := NewMemo(Style{Width: 80})

	var seen []Style
	cancel, err := m.Notify(func(s Style) {
		seen = append(seen, s)
	})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	first := Style{Width: 80, Scroll: ScrollHidden}
	m.SetStyle(first)

	if len(seen) != 1 || seen[0] != first {
		t.Fatalf("seen = %+v, want one notification of %+v", seen, first)
	}

	cancel()
	m.SetStyle(Style{Width: 120})

	if len(seen) != 1 {
		t.Errorf("canceled listener still notified: %d notifications", len(seen))
	}
}

func TestMemoNotifyMultipleListeners(t *testing.T) {
	m := NewMemo(Style{})

	count := 0
	for i := 0; i < 3; i++ {
		if _, err := m.Notify(func(Style) { count++ }); err != nil {
			t.Fatalf("Notify() error = %v", err)
		}
	}

	m.SetStyle(Style{Scroll: ScrollHidden})

	if count != 3 {
		t.Errorf("notifications = %d, want 3", count)
	}
}

func TestMemoListenerCanReadBack(t *testing.T) {
	m := NewMemo(Style{})

	var observed Style
	_, err := m.Notify(func(Style) {
		// Listeners run outside the mutex, so reading back must not deadlock.
		observed = m.Style()
	})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	want := Style{Scroll: ScrollHidden, Anchor: AnchorPinned}
	m.SetStyle(want)

	if observed != want {
		t.Errorf("observed = %+v, want %+v", observed, want)
	}
}

func TestModeStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{ScrollAuto.String(), "auto"},
		{ScrollHidden.String(), "hidden"},
		{AnchorFlow.String(), "flow"},
		{AnchorPinned.String(), "pinned"},
		{ScrollMode(99).String(), "unknown"},
		{Anchor(99).String(), "unknown"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
