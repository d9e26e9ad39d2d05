package frame

import (
	"github.com/atomicstack/cascade-menu/internal/geom"
	"github.com/atomicstack/cascade-menu/internal/logging/events"
	"github.com/atomicstack/cascade-menu/internal/menu"
	"github.com/atomicstack/cascade-menu/internal/theme"
)

// MenuFrame is one open menu on screen: a window holding an optional title
// band and one EntryFrame per menu entry.
//
// A frame owns its child submenu frame; the child refers back to it through
// parent without owning it. Hiding a frame destroys it.
type MenuFrame struct {
	mgr    *Manager
	menu   *menu.Menu
	client menu.Client

	window Window
	title  Window
	items  Window

	aTitle *theme.Appearance
	aItems *theme.Appearance

	parent   *MenuFrame
	child    *MenuFrame
	entries  []*EntryFrame
	selected *EntryFrame

	area   geom.Rect
	titleH int
	innerW int
	itemH  int
	textX  int
	textW  int

	destroyed bool
}

func newMenuFrame(m *Manager, mn *menu.Menu, client menu.Client) *MenuFrame {
	d := m.display
	f := &MenuFrame{
		mgr:    m,
		menu:   mn,
		client: client,
	}
	f.window = d.CreateWindow(d.RootWindow(), FrameEventMask)
	f.title = d.CreateWindow(f.window, TitleEventMask)
	f.items = d.CreateWindow(f.window, 0)
	d.MapWindow(f.items)

	f.aTitle = m.theme.MenuTitle.Copy()
	f.aItems = m.theme.Menu.Copy()
	return f
}

func (f *MenuFrame) Menu() *menu.Menu { return f.menu }
func (f *MenuFrame) Client() menu.Client { return f.client }
func (f *MenuFrame) Parent() *MenuFrame { return f.parent }
func (f *MenuFrame) Child() *MenuFrame { return f.child }
func (f *MenuFrame) Selected() *EntryFrame { return f.selected }
func (f *MenuFrame) Area() geom.Rect { return f.area }
func (f *MenuFrame) Window() Window { return f.window }
func (f *MenuFrame) TitleHeight() int { return f.titleH }
func (f *MenuFrame) ItemHeight() int { return f.itemH }
func (f *MenuFrame) InnerWidth() int { return f.innerW }
func (f *MenuFrame) Visible() bool { return f.mgr.isVisible(f) }
func (f *MenuFrame) Destroyed() bool { return f.destroyed }
func (f *MenuFrame) TextColumn() (x, width int) { return f.textX, f.textW }

// Entries returns the frame's entry frames in display order.
func (f *MenuFrame) Entries() []*EntryFrame {
	out := make([]*EntryFrame, len(f.entries))
	copy(out, f.entries)
	return out
}

// IndexOf returns the display index of e, or -1.
func (f *MenuFrame) IndexOf(e *EntryFrame) int {
	for i, v := range f.entries {
		if v == e {
			return i
		}
	}
	return -1
}

// Move places the frame's top-left corner at (x, y). No screen constraints
// are applied.
func (f *MenuFrame) Move(x, y int) {
	f.area.SetPoint(x, y)
	f.mgr.display.MoveWindow(f.window, f.area.X, f.area.Y)
}

// MoveOnScreen shifts the frame, and every ancestor with it, so the frame
// lies inside a monitor. Overflow past the right or bottom edge is fixed
// first; underflow past the left or top edge only when there was none. The
// pointer is warped by the same amount so it stays over the same entry.
func (f *MenuFrame) MoveOnScreen() {
	a, ok := f.monitor()
	if !ok {
		return
	}

	dx := min(0, a.Right()-f.area.Right())
	dy := min(0, a.Bottom()-f.area.Bottom())
	if dx == 0 {
		dx = max(0, a.X-f.area.X)
	}
	if dy == 0 {
		dy = max(0, a.Y-f.area.Y)
	}
	if dx == 0 && dy == 0 {
		return
	}

	for p := f; p != nil; p = p.parent {
		p.Move(p.area.X+dx, p.area.Y+dy)
	}
	f.mgr.display.WarpPointer(dx, dy)
	events.Frame.MoveOnScreen(f.menu.ID, dx, dy)
}

// monitor picks the monitor MoveOnScreen clamps against. The scan for an
// intersecting monitor is run but its result is overridden by monitor 0
// whenever any monitor exists, so frames are always pulled onto the first
// monitor. Placement relies on this; TestMoveOnScreenAlwaysUsesFirstMonitor
// pins it.
func (f *MenuFrame) monitor() (geom.Rect, bool) {
	scr := f.mgr.screen
	n := scr.NumMonitors()
	if n == 0 {
		return geom.Rect{}, false
	}
	var a geom.Rect
	for i := 0; i < n; i++ {
		a = scr.MonitorArea(i)
		if a.Intersects(f.area) {
			break
		}
	}
	a = scr.MonitorArea(0)
	return a, true
}

// SyncEntries brings the entry frames in line with the bound menu. Existing
// entry frames are rebound in place, missing ones are created and extra ones
// destroyed. The selection is always cleared.
func (f *MenuFrame) SyncEntries() {
	f.selected = nil

	src := f.menu.Entries
	n := min(len(src), len(f.entries))
	for i := 0; i < n; i++ {
		f.entries[i].entry = src[i]
	}

	created, destroyed := 0, 0
	for _, e := range src[n:] {
		f.entries = append(f.entries, newEntryFrame(e, f))
		created++
	}
	for _, ef := range f.entries[len(src):] {
		ef.destroy()
		destroyed++
	}
	clear(f.entries[len(src):])
	f.entries = f.entries[:len(src)]

	events.Frame.Sync(f.menu.ID, len(f.entries), created, destroyed)
}

// Render recomputes the full layout from scratch and paints the frame and all
// of its entries.
func (f *MenuFrame) Render() {
	d := f.mgr.display
	r := f.mgr.renderer
	th := f.mgr.theme
	bw := th.BorderWidth

	w, h := 0, 0
	allItemsH := 0

	d.SetBorder(f.window, bw, th.BorderColor)

	f.titleH = 0
	hasTitle := f.parent == nil && f.menu.Title != ""
	if hasTitle {
		d.MoveWindow(f.title, -bw, h-bw)
		f.aTitle.SetText(f.menu.Title)
		tw, tht := r.MinSize(f.aTitle)
		w = max(w, tw)
		f.titleH = tht + bw
		h += f.titleH
		d.SetBorder(f.title, bw, th.BorderColor)
	}

	d.MoveWindow(f.items, 0, h)

	if len(f.entries) > 0 {
		e := f.entries[0]
		e.aTextNormal.SetText("")
		_, f.itemH = r.MinSize(e.aTextNormal)
	} else {
		f.itemH = 0
	}

	hasIcon, hasBullet := false, false
	for _, e := range f.entries {
		e.area.SetPoint(0, allItemsH)
		d.MoveWindow(e.window, 0, e.area.Y)

		tw, tht := e.measure()
		row := describe(e.entry)
		hasBullet = hasBullet || row.bullet
		hasIcon = hasIcon || row.icon
		w = max(w, tw)
		h += tht
		allItemsH += tht
	}

	f.textX = 0
	f.textW = w
	if len(f.entries) > 0 {
		if hasBullet {
			w += f.itemH
		}
		if hasIcon {
			w += f.itemH
			f.textX += f.itemH
		}
	}

	if w == 0 {
		w = 10
	}
	if allItemsH == 0 {
		allItemsH = 3
	}
	if h == 0 {
		h = 3
	}

	d.ResizeWindow(f.window, w, h)
	d.ResizeWindow(f.items, w, allItemsH)
	f.innerW = w

	if hasTitle {
		d.ResizeWindow(f.title, w, f.titleH-bw)
		r.Paint(f.aTitle, f.title, w, f.titleH-bw)
		d.MapWindow(f.title)
	} else {
		d.UnmapWindow(f.title)
	}

	r.Paint(f.aItems, f.items, w, allItemsH)

	for _, e := range f.entries {
		e.render()
	}

	w += bw * 2
	h += bw * 2
	f.area.SetSize(w, h)

	events.Frame.Render(f.menu.ID, w, h)
}

func (f *MenuFrame) update() {
	f.SyncEntries()
	f.Render()
}

// Show makes the frame visible as a submenu of parent, or as a top-level menu
// when parent is nil. Any other submenu already open under parent is hidden
// first. Input is grabbed before the first frame is mapped. Showing an
// already visible frame only re-applies placement and mapping.
func (f *MenuFrame) Show(parent *MenuFrame) {
	if f.parent != nil && f.parent != parent && f.parent.child == f {
		f.parent.child = nil
	}
	if parent != nil {
		if parent.child != nil && parent.child != f {
			parent.child.Hide()
		}
		parent.child = f
	}
	f.parent = parent

	if f.mgr.register(f) {
		f.update()
	}

	f.MoveOnScreen()

	f.mgr.display.MapWindow(f.window)

	parentID := ""
	if parent != nil {
		parentID = parent.menu.ID
	}
	events.Frame.Show(f.menu.ID, parentID, len(f.mgr.visible))
}

// Hide closes the frame and its open submenu chain, releasing input once the
// last frame is gone, and destroys the frame. The frame must not be used
// afterwards.
func (f *MenuFrame) Hide() {
	if f.destroyed {
		return
	}
	wasVisible := f.mgr.unregister(f)

	if f.child != nil {
		f.child.Hide()
	}

	if f.parent != nil && f.parent.child == f {
		f.parent.child = nil
	}
	f.parent = nil

	if wasVisible {
		f.mgr.releaseIfIdle()
	}

	f.mgr.display.UnmapWindow(f.window)
	events.Frame.Hide(f.menu.ID, len(f.mgr.visible))

	f.destroy()
}

// Refresh re-synchronises a visible frame with its menu after the menu's
// entries changed, closing any open submenu first.
func (f *MenuFrame) Refresh() {
	if !f.Visible() {
		return
	}
	if f.child != nil {
		f.child.Hide()
	}
	f.update()
	f.MoveOnScreen()
}

func (f *MenuFrame) destroy() {
	d := f.mgr.display
	for _, e := range f.entries {
		e.destroy()
	}
	f.entries = nil
	f.selected = nil

	d.DestroyWindow(f.items)
	d.DestroyWindow(f.title)
	d.DestroyWindow(f.window)

	f.aItems = nil
	f.aTitle = nil
	f.destroyed = true
}
