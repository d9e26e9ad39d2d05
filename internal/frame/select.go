package frame

import (
	"github.com/atomicstack/cascade-menu/internal/logging/events"
	"github.com/atomicstack/cascade-menu/internal/menu"
)

// Select moves the highlight to entry. Separators and nil clear it. Leaving a
// submenu entry hides its open submenu; landing on one opens it. This is the
// only place the selection changes outside of SyncEntries.
func (f *MenuFrame) Select(entry *EntryFrame) {
	old := f.selected
	if old == entry {
		return
	}

	if entry != nil && entry.Kind() != menu.KindSeparator {
		f.selected = entry
	} else {
		f.selected = nil
	}

	if old != nil {
		old.render()
		if old.Kind() == menu.KindSubmenu && f.child != nil {
			f.child.Hide()
		}
	}
	if f.selected == nil {
		events.Select.Clear(f.menu.ID)
		return
	}

	f.selected.render()
	events.Select.Entry(f.menu.ID, f.selected.entry.EntryID())
	if f.selected.Kind() == menu.KindSubmenu {
		f.selected.ShowSubmenu()
	}
}

// SelectNext highlights the next selectable entry after the current one,
// wrapping around. With nothing selected it starts from the top.
func (f *MenuFrame) SelectNext() {
	f.step(1)
}

// SelectPrev highlights the previous selectable entry, wrapping around. With
// nothing selected it starts from the bottom.
func (f *MenuFrame) SelectPrev() {
	f.step(-1)
}

func (f *MenuFrame) step(dir int) {
	n := len(f.entries)
	if n == 0 {
		return
	}
	i := f.IndexOf(f.selected)
	if i < 0 {
		if dir > 0 {
			i = -1
		} else {
			i = n
		}
	}
	for tries := 0; tries < n; tries++ {
		i = (i + dir + n) % n
		if f.entries[i].Kind() != menu.KindSeparator {
			f.Select(f.entries[i])
			return
		}
	}
}

// ShowSubmenu opens the entry's submenu to the right of its frame, level with
// the entry.
func (e *EntryFrame) ShowSubmenu() {
	sub, ok := e.entry.(*menu.SubmenuEntry)
	if !ok || sub.Submenu == nil {
		return
	}
	f := e.frame
	th := f.mgr.theme

	child := f.mgr.NewFrame(sub.Submenu, f.client)
	x := f.area.X + f.area.Width - th.MenuOverlap
	y := f.area.Y + f.titleH + e.area.Y
	child.Move(x, y)
	events.Select.Submenu(f.menu.ID, sub.Submenu.ID, x, y)
	child.Show(f)
}

// Execute runs a normal entry's actions in order against the frame's client
// and then closes every open menu. Action errors are logged and do not stop
// the remaining actions. Non-normal entries do nothing. The enabled flag is
// not consulted here; callers that honour it check before executing.
func (e *EntryFrame) Execute() {
	n, ok := e.entry.(*menu.NormalEntry)
	if !ok {
		return
	}
	f := e.frame
	mgr := f.mgr
	client := f.client

	events.Action.Execute(f.menu.ID, n.ID, len(n.Actions))
	for _, act := range n.Actions {
		if act == nil {
			continue
		}
		if err := act(client); err != nil {
			events.Action.Error(n.ID, err)
		}
	}
	mgr.HideAll()
}
