package frame

import (
	"github.com/atomicstack/cascade-menu/internal/logging/events"
	"github.com/atomicstack/cascade-menu/internal/menu"
	"github.com/atomicstack/cascade-menu/internal/theme"
)

// Config wires a Manager to its collaborators.
type Config struct {
	Display  Display
	Renderer Renderer
	Grabber  Grabber
	Screen   Screen
	Theme    *theme.Theme
}

// Manager owns the set of visible menu frames and the collaborators they
// draw with. Input is grabbed while at least one frame is visible.
//
// A Manager is not safe for concurrent use; it is driven from the event loop.
type Manager struct {
	display  Display
	renderer Renderer
	grabber  Grabber
	screen   Screen
	theme    *theme.Theme

	// visible is ordered most recently shown first.
	visible []*MenuFrame
	grabbed bool
}

// NewManager returns a manager with no visible frames. A nil theme selects
// theme.Default.
func NewManager(cfg Config) *Manager {
	th := cfg.Theme
	if th == nil {
		th = theme.Default()
	}
	return &Manager{
		display:  cfg.Display,
		renderer: cfg.Renderer,
		grabber:  cfg.Grabber,
		screen:   cfg.Screen,
		theme:    th,
	}
}

// Theme returns the theme frames are rendered with.
func (m *Manager) Theme() *theme.Theme {
	return m.theme
}

// Visible returns the visible frames, most recently shown first.
func (m *Manager) Visible() []*MenuFrame {
	out := make([]*MenuFrame, len(m.visible))
	copy(out, m.visible)
	return out
}

// Top returns the most recently shown frame, or nil when none is visible.
func (m *Manager) Top() *MenuFrame {
	if len(m.visible) == 0 {
		return nil
	}
	return m.visible[0]
}

// Open reports whether any frame is visible.
func (m *Manager) Open() bool {
	return len(m.visible) > 0
}

// HideAll hides every visible frame. Each Hide removes at least the frame it
// is called on, so the loop terminates.
func (m *Manager) HideAll() {
	for len(m.visible) > 0 {
		m.visible[0].Hide()
	}
}

// FrameUnder returns the most recently shown frame containing (x, y).
func (m *Manager) FrameUnder(x, y int) *MenuFrame {
	for _, f := range m.visible {
		if f.area.Contains(x, y) {
			return f
		}
	}
	return nil
}

// EntryUnder returns the entry frame at screen position (x, y), or nil.
func (m *Manager) EntryUnder(x, y int) *EntryFrame {
	f := m.FrameUnder(x, y)
	if f == nil {
		return nil
	}
	bw := m.theme.BorderWidth
	x -= bw + f.area.X
	y -= f.titleH + bw + f.area.Y
	for _, e := range f.entries {
		if e.area.Contains(x, y) {
			return e
		}
	}
	return nil
}

func (m *Manager) isVisible(f *MenuFrame) bool {
	for _, v := range m.visible {
		if v == f {
			return true
		}
	}
	return false
}

// register prepends f, grabbing input on the first frame. It reports whether
// f was newly added.
func (m *Manager) register(f *MenuFrame) bool {
	if len(m.visible) == 0 && !m.grabbed {
		m.grabber.Grab(true, true)
		m.grabbed = true
		events.Grab.Acquire()
	}
	if m.isVisible(f) {
		return false
	}
	m.visible = append([]*MenuFrame{f}, m.visible...)
	return true
}

// unregister removes f and reports whether it was present.
func (m *Manager) unregister(f *MenuFrame) bool {
	for i, v := range m.visible {
		if v == f {
			m.visible = append(m.visible[:i], m.visible[i+1:]...)
			return true
		}
	}
	return false
}

// releaseIfIdle ungrabs once the last frame is gone. A nested Hide that
// already released leaves nothing for the outer one to do.
func (m *Manager) releaseIfIdle() {
	if len(m.visible) == 0 && m.grabbed {
		m.grabber.Ungrab(true, true)
		m.grabbed = false
		events.Grab.Release()
	}
}

// NewFrame creates an unmapped frame for mn on behalf of client.
func (m *Manager) NewFrame(mn *menu.Menu, client menu.Client) *MenuFrame {
	return newMenuFrame(m, mn, client)
}
