package ui

import (
	"unicode"

	"github.com/atomicstack/cascade-menu/internal/logging/events"
	"github.com/atomicstack/cascade-menu/internal/menu"
	uistate "github.com/atomicstack/cascade-menu/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Open      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Right     key.Binding
	Left      key.Binding
	Close     key.Binding
	Backspace key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Open:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Up:        key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "ctrl+n", "tab"), key.WithHelp("↓", "down")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "open")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "back")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	open := m.mgr.Open()
	events.Input.Key(keyMsg.String(), open)

	if key.Matches(keyMsg, m.keys.ForceQuit) {
		return tea.Quit
	}
	if !open {
		return m.handleDesktopKey(keyMsg)
	}

	active := m.activeFrame()
	switch {
	case key.Matches(keyMsg, m.keys.Close):
		m.closeAll()
	case key.Matches(keyMsg, m.keys.Down):
		m.typeahead.Reset()
		active.SelectNext()
	case key.Matches(keyMsg, m.keys.Up):
		m.typeahead.Reset()
		active.SelectPrev()
	case key.Matches(keyMsg, m.keys.Right):
		m.enterSubmenu(active)
	case key.Matches(keyMsg, m.keys.Left):
		m.leaveSubmenu(active)
	case key.Matches(keyMsg, m.keys.Enter):
		if m.enterSubmenu(active) {
			return nil
		}
		if sel := active.Selected(); sel != nil && sel.Kind() == menu.KindNormal {
			m.execute(sel)
		}
	case key.Matches(keyMsg, m.keys.Backspace):
		if m.typeahead.Pop() {
			m.applyTypeAhead()
		}
	default:
		if text, ok := typedText(keyMsg); ok {
			m.typeahead.Push(active.Menu().ID, text)
			m.applyTypeAhead()
		}
	}
	return nil
}

func (m *Model) handleDesktopKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Close):
		return tea.Quit
	case key.Matches(msg, m.keys.Open):
		x, y := m.term.Pointer()
		m.openRoot(x, y)
		if f := m.rootFrame(); f != nil {
			f.SelectNext()
		}
	}
	return nil
}

// typedText returns the printable text carried by msg.
func typedText(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeySpace:
		return " ", true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return "", false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return "", false
			}
		}
		return string(msg.Runes), true
	}
	return "", false
}

// applyTypeAhead selects the entry of the active frame that best matches the
// typed query.
func (m *Model) applyTypeAhead() {
	active := m.activeFrame()
	if active == nil {
		m.typeahead.Reset()
		return
	}
	if !m.typeahead.Active() {
		return
	}
	entries := active.Entries()
	cands := make([]uistate.Candidate, 0, len(entries))
	for i, e := range entries {
		if e.Kind() == menu.KindSeparator {
			continue
		}
		cands = append(cands, uistate.Candidate{
			Index: i,
			ID:    e.Entry().EntryID(),
			Label: menu.Text(e.Entry()),
		})
	}
	idx := uistate.BestMatchIndex(cands, m.typeahead.Query)
	events.Input.TypeAhead(active.Menu().ID, m.typeahead.Query, idx)
	if idx < 0 {
		return
	}
	active.Select(entries[idx])
}
