// Package surface abstracts the shared scrollable resource that scrollguard
// arbitrates. It separates the resource's appearance (Style) and the
// transforms applied to it from the lock accounting in internal/scrollock,
// so both sides can be tested in isolation.
package surface

import (
	"errors"
	"sync"
)

// ErrNotifyUnsupported is returned by surfaces that cannot report
// out-of-band style changes.
var ErrNotifyUnsupported = errors.New("surface does not support change notification")

// Surface is a scrollable resource whose appearance can be read and replaced
// wholesale. SetStyle replaces every attribute at once so partial updates
// cannot diverge from the caller's intent.
type Surface interface {
	// Style returns the current appearance.
	Style() Style
	// SetStyle replaces the current appearance.
	SetStyle(Style)
	// ScrollOffset returns the current scroll position in rows.
	ScrollOffset() int
	// ScrollTo moves the scroll position to the given row offset.
	ScrollTo(offset int)
}

// Notifier is implemented by surfaces that can report style mutations,
// including ones made by code that bypasses the lock manager. The watchdog
// depends on this; a surface without it simply runs unguarded.
type Notifier interface {
	// Notify registers fn to be called on every style change with the new
	// style. It returns a cancel function, or an error if the surface cannot
	// observe its own mutations.
	Notify(fn func(Style)) (cancel func(), err error)
}

// Memo is an in-memory Surface with change notification. It backs the TUI
// viewport adapter and the test fakes. Safe for concurrent use.
type Memo struct {
	mu        sync.Mutex
	style     Style
	offset    int
	nextID    int
	listeners map[int]func(Style)
}

// NewMemo creates a Memo with the given initial style.
func NewMemo(style Style) *Memo {
	return &Memo{
		style:     style,
		listeners: make(map[int]func(Style)),
	}
}

// Style returns the current appearance.
func (m *Memo) Style() Style {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.style
}

// SetStyle replaces the current appearance and notifies listeners.
func (m *Memo) SetStyle(style Style) {
	m.mu.Lock()
	m.style = style
	fns := make([]func(Style), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	// Listeners run outside the mutex so they can read the surface back.
	for _, fn := range fns {
		fn(style)
	}
}

// ScrollOffset returns the current scroll position.
func (m *Memo) ScrollOffset() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offset
}

// ScrollTo moves the scroll position. Negative offsets clamp to zero.
func (m *Memo) ScrollTo(offset int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset < 0 {
		offset = 0
	}
	m.offset = offset
}

// Notify registers a style-change listener.
func (m *Memo) Notify(fn func(Style)) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}, nil
}
