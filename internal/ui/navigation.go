package ui

import (
	"github.com/atomicstack/cascade-menu/internal/frame"
	"github.com/atomicstack/cascade-menu/internal/logging/events"
	"github.com/atomicstack/cascade-menu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// openRoot shows the root menu with its top-left corner at (x, y). It does
// nothing while a menu is already open.
func (m *Model) openRoot(x, y int) {
	if m.mgr.Open() {
		return
	}
	root := m.registry.Root()
	if root == nil {
		m.errMsg = "no root menu defined"
		return
	}
	m.errMsg = ""
	m.infoMsg = ""
	m.typeahead.Reset()
	f := m.mgr.NewFrame(root, nil)
	f.Move(x, y)
	f.Show(nil)
}

func (m *Model) closeAll() {
	m.typeahead.Reset()
	m.mgr.HideAll()
}

// rootFrame returns the open top-level frame, or nil.
func (m *Model) rootFrame() *frame.MenuFrame {
	for _, f := range m.mgr.Visible() {
		if f.Parent() == nil {
			return f
		}
	}
	return nil
}

// activeFrame returns the frame keyboard input applies to: the deepest open
// frame that has a selection, or the root frame when nothing deeper is
// selected. A submenu that was opened but not entered stays inactive.
func (m *Model) activeFrame() *frame.MenuFrame {
	f := m.rootFrame()
	if f == nil {
		return nil
	}
	for {
		child := f.Child()
		if child == nil || child.Selected() == nil {
			return f
		}
		f = child
	}
}

// enterSubmenu opens the selected submenu of f, if needed, and selects its
// first entry. It reports whether f had a submenu entry selected.
func (m *Model) enterSubmenu(f *frame.MenuFrame) bool {
	sel := f.Selected()
	if sel == nil || sel.Kind() != menu.KindSubmenu {
		return false
	}
	if f.Child() == nil {
		sel.ShowSubmenu()
	}
	if child := f.Child(); child != nil {
		child.SelectNext()
	}
	m.typeahead.Reset()
	return true
}

// leaveSubmenu closes f when it is a submenu, returning focus to its parent.
func (m *Model) leaveSubmenu(f *frame.MenuFrame) {
	if f == nil || f.Parent() == nil {
		return
	}
	f.Hide()
	m.typeahead.Reset()
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	x, y := mouse.X, mouse.Y
	m.term.SetPointer(x, y)

	switch mouse.Action {
	case tea.MouseActionMotion:
		m.pointerMotion(x, y)
	case tea.MouseActionPress:
		events.Input.Mouse("press", mouse.Button.String(), x, y)
		m.pointerPress(mouse.Button, x, y)
	case tea.MouseActionRelease:
		events.Input.Mouse("release", mouse.Button.String(), x, y)
		m.pointerRelease(mouse.Button, x, y)
	}
	return nil
}

// pointerMotion highlights the entry under the pointer. Over a frame but not
// over an entry the frame's selection is cleared; outside every frame the
// selection is kept.
func (m *Model) pointerMotion(x, y int) {
	if !m.mgr.Open() {
		return
	}
	if e := m.mgr.EntryUnder(x, y); e != nil {
		if e.Frame().Selected() != e {
			m.typeahead.Reset()
		}
		e.Frame().Select(e)
		return
	}
	if f := m.mgr.FrameUnder(x, y); f != nil {
		f.Select(nil)
	}
}

func (m *Model) pointerPress(button tea.MouseButton, x, y int) {
	if !m.mgr.Open() {
		if button == tea.MouseButtonRight {
			m.openRoot(x, y)
		}
		return
	}
	if m.mgr.FrameUnder(x, y) == nil {
		m.closeAll()
		return
	}
	if e := m.mgr.EntryUnder(x, y); e != nil {
		e.Frame().Select(e)
	}
}

func (m *Model) pointerRelease(button tea.MouseButton, x, y int) {
	if button != tea.MouseButtonLeft && button != tea.MouseButtonRight {
		return
	}
	e := m.mgr.EntryUnder(x, y)
	if e == nil || e.Kind() != menu.KindNormal {
		return
	}
	m.execute(e)
}

func (m *Model) execute(e *frame.EntryFrame) {
	if !e.Entry().Enabled() {
		m.infoMsg = menu.Text(e.Entry()) + " is disabled"
		return
	}
	m.typeahead.Reset()
	m.infoMsg = ""
	e.Execute()
}
