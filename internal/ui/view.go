package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	searchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
)

const desktopHint = "right click or m: menu · q: quit"
const menuHint = "↑/↓ move · →/enter open · ← back · esc close · type to search"

// View implements tea.Model.
func (m *Model) View() string {
	canvas := m.term.Compose(m.width, m.canvasHeight())
	status := m.statusLine()
	if canvas == "" {
		return status
	}
	return canvas + "\n" + status
}

// statusLine renders the bottom row: an error, the type-ahead query, a
// transient info message, or the key hints, in that order of precedence.
func (m *Model) statusLine() string {
	var (
		text  string
		style lipgloss.Style
	)
	switch {
	case m.errMsg != "":
		text, style = "Error: "+m.errMsg, errorStyle
	case m.typeahead.Active():
		text, style = "search: "+m.typeahead.Query, searchStyle
	case m.infoMsg != "":
		text, style = m.infoMsg, statusStyle
	case m.mgr.Open():
		text, style = menuHint, statusStyle
	default:
		text, style = desktopHint, statusStyle
	}
	width := m.width
	if width <= 0 {
		return style.Render(text)
	}
	if lipgloss.Width(text) > width {
		text = truncate.StringWithTail(text, uint(width), "…")
	}
	if pad := width - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return style.Render(text)
}
