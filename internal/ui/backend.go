package ui

import (
	"fmt"

	"github.com/atomicstack/cascade-menu/internal/backend"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.watcher != nil {
		return waitForBackendEvent(m.watcher)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

// applyBackendEvent feeds a reload into the registry and re-synchronises the
// open frames whose menus changed.
func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		m.errMsg = "menu reload failed: " + res.Err.Error()
		return
	}
	if !res.MenusUpdated {
		return
	}
	m.errMsg = ""
	m.infoMsg = fmt.Sprintf("menus reloaded (%d changed)", len(res.Changed))
	if len(res.Changed) == 0 {
		return
	}
	changed := make(map[string]struct{}, len(res.Changed))
	for _, id := range res.Changed {
		changed[id] = struct{}{}
	}
	// Visible is most recent first; refresh parents before children so a
	// child closed by its parent's refresh is skipped.
	visible := m.mgr.Visible()
	for i := len(visible) - 1; i >= 0; i-- {
		f := visible[i]
		if f.Destroyed() {
			continue
		}
		if _, ok := changed[f.Menu().ID]; ok {
			f.Refresh()
		}
	}
	m.typeahead.Reset()
}
