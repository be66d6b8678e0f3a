package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Iron-Ham/scrollguard/internal/config"
	"github.com/Iron-Ham/scrollguard/internal/event"
	"github.com/Iron-Ham/scrollguard/internal/scrollock"
	"github.com/Iron-Ham/scrollguard/internal/surface"
)

// tickMsg drives periodic status refreshes so delayed releases and watchdog
// repairs become visible without a keypress.
type tickMsg time.Time

const tickInterval = 250 * time.Millisecond

// Model is the bubbletea model for the scrollguard demo. The viewport is the
// shared surface; overlays are the uncoordinated claim holders.
type Model struct {
	cfg  *config.Config
	bus  *event.Bus
	mgr  *scrollock.Manager
	surf *surface.Memo

	vp       viewport.Model
	overlays []string // stack of open overlay IDs, innermost last
	nextID   int
	width    int
	height   int
	ready    bool
}

// NewModel creates the demo model. The surface memo is the same one the
// manager and watchdog operate on.
func NewModel(cfg *config.Config, bus *event.Bus, mgr *scrollock.Manager, surf *surface.Memo) Model {
	return Model{
		cfg:  cfg,
		bus:  bus,
		mgr:  mgr,
		surf: surf,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - statusBarHeight
		if contentHeight < 1 {
			contentHeight = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, contentHeight)
			m.vp.SetContent(demoContent(m.cfg.TUI.ContentLines, msg.Width))
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = contentHeight
		}
		return m, nil

	case tickMsg:
		// Pick up scroll restores done by delayed releases or repairs.
		m.syncViewport()
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes key presses. Scroll input is honored only while the
// surface allows it; everything else exercises the lock manager.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.bus.Publish(event.NewShutdownEvent("quit"))
		return m, tea.Quit

	case "o":
		m.nextID++
		id := fmt.Sprintf("overlay-%d", m.nextID)
		m.overlays = append(m.overlays, id)
		m.mgr.Lock(id)
		return m, nil

	case "esc":
		if len(m.overlays) == 0 {
			return m, nil
		}
		id := m.overlays[len(m.overlays)-1]
		m.overlays = m.overlays[:len(m.overlays)-1]
		m.mgr.Unlock(id)
		if len(m.overlays) == 0 {
			m.bus.Publish(event.NewOverlayClosedEvent(id))
		}
		m.syncViewport()
		return m, nil

	case "enter":
		if len(m.overlays) == 0 {
			return m, nil
		}
		// The whole flow is done. Drop the stack without releasing each
		// claim: the overlay.completed hook force-unlocks after its delay.
		m.overlays = nil
		m.bus.Publish(event.NewOverlayCompletedEvent("flow"))
		return m, nil

	case "d":
		// Rogue code path: suppress the surface behind the manager's back
		// and let the watchdog clean it up.
		m.surf.SetStyle(surface.Suppressed(m.mgr.Baseline(), m.surf.ScrollOffset()))
		return m, nil

	case "up", "k":
		m.scrollBy(-1)
		return m, nil
	case "down", "j":
		m.scrollBy(1)
		return m, nil
	case "pgup":
		m.scrollBy(-m.vp.Height)
		return m, nil
	case "pgdown":
		m.scrollBy(m.vp.Height)
		return m, nil
	case "home":
		m.scrollTo(0)
		return m, nil
	}

	return m, nil
}

// scrollBy moves the surface's scroll offset unless scrolling is suppressed.
func (m *Model) scrollBy(delta int) {
	m.scrollTo(m.surf.ScrollOffset() + delta)
}

func (m *Model) scrollTo(offset int) {
	if m.surf.Style().Scroll == surface.ScrollHidden {
		return
	}
	if max := m.maxScroll(); offset > max {
		offset = max
	}
	m.surf.ScrollTo(offset)
	m.syncViewport()
}

func (m *Model) maxScroll() int {
	max := m.vp.TotalLineCount() - m.vp.Height
	if max < 0 {
		max = 0
	}
	return max
}

// syncViewport aligns the viewport with the surface, which is the single
// source of truth for scroll position.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	if offset := m.surf.ScrollOffset(); offset != m.vp.YOffset {
		m.vp.SetYOffset(offset)
	}
}

// demoContent fills the viewport with numbered filler lines.
func demoContent(lines, width int) string {
	if width < 20 {
		width = 20
	}
	var b strings.Builder
	for i := 1; i <= lines; i++ {
		fmt.Fprintf(&b, "%4d  %s\n", i, strings.Repeat("·", width/2))
	}
	return b.String()
}
