package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/scrollguard/internal/surface"
)

const statusBarHeight = 1

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	unlockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 3)

	overlayTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63")).
				Bold(true)
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "initializing..."
	}

	content := m.vp.View()
	if len(m.overlays) > 0 {
		content = m.renderOverlay()
	}

	return content + "\n" + m.renderStatusBar()
}

// renderOverlay draws the innermost overlay centered over the content area.
func (m Model) renderOverlay() string {
	id := m.overlays[len(m.overlays)-1]

	body := overlayTitleStyle.Render(id) + "\n\n" +
		fmt.Sprintf("%d overlay(s) open, scrolling is locked\n\n", len(m.overlays)) +
		"o: open another   esc: close   enter: complete flow"

	box := overlayStyle.Render(body)
	return lipgloss.Place(m.width, m.vp.Height, lipgloss.Center, lipgloss.Center, box)
}

// renderStatusBar shows the live lock status plus the key help.
func (m Model) renderStatusBar() string {
	status := m.mgr.Status()

	var state string
	if status.Locked {
		state = lockedStyle.Render(fmt.Sprintf("LOCKED(%d)", status.Count))
		if len(status.Reasons) > 0 {
			state += " " + strings.Join(status.Reasons, ",")
		}
	} else {
		state = unlockedStyle.Render("unlocked")
	}

	suppressed := ""
	if m.surf.Style().Scroll == surface.ScrollHidden {
		suppressed = " [scroll hidden]"
	}

	line := fmt.Sprintf("%s%s  offset %d  |  o:overlay esc:close enter:complete d:rogue q:quit",
		state, suppressed, m.surf.ScrollOffset())

	return statusStyle.Width(m.width).Render(line)
}
