package frame

import (
	"fmt"

	"github.com/atomicstack/cascade-menu/internal/geom"
	"github.com/atomicstack/cascade-menu/internal/menu"
	"github.com/atomicstack/cascade-menu/internal/theme"
)

// row is the per-variant behaviour of an entry: what text it shows, whether
// it is a separator row, and which indicators it draws.
type row struct {
	text      string
	separator bool
	bullet    bool
	icon      bool
}

func describe(e menu.Entry) row {
	switch menu.KindOf(e) {
	case menu.KindNormal:
		// Icons are not drawn yet, so no entry reserves an icon column.
		return row{text: menu.Text(e)}
	case menu.KindSubmenu:
		return row{text: menu.Text(e), bullet: true}
	case menu.KindSeparator:
		return row{separator: true}
	}
	panic(fmt.Sprintf("frame: unhandled entry kind %v", menu.KindOf(e)))
}

// EntryFrame draws one entry of a MenuFrame. The entry it displays can be
// rebound when the menu is re-synchronised.
type EntryFrame struct {
	entry menu.Entry
	frame *MenuFrame

	area geom.Rect

	window Window
	icon   Window
	text   Window
	bullet Window

	aNormal   *theme.Appearance
	aDisabled *theme.Appearance
	aSelected *theme.Appearance

	aIcon   *theme.Appearance
	aBullet *theme.Appearance

	aTextNormal   *theme.Appearance
	aTextDisabled *theme.Appearance
	aTextSelected *theme.Appearance
}

func newEntryFrame(entry menu.Entry, f *MenuFrame) *EntryFrame {
	d := f.mgr.display
	th := f.mgr.theme
	e := &EntryFrame{entry: entry, frame: f}

	e.window = d.CreateWindow(f.items, EntryEventMask)
	e.icon = d.CreateWindow(e.window, 0)
	e.text = d.CreateWindow(e.window, 0)
	e.bullet = d.CreateWindow(e.window, 0)

	d.MapWindow(e.window)
	d.MapWindow(e.text)

	e.aNormal = th.MenuItem.Copy()
	e.aDisabled = th.MenuDisabled.Copy()
	e.aSelected = th.MenuHilite.Copy()

	e.aIcon = th.ClearTexture.Copy()
	e.aIcon.Texture.Kind = theme.TextureRGBA
	e.aBullet = th.MenuBullet.Copy()
	e.aBullet.Texture.Kind = theme.TextureMask

	e.aTextNormal = th.MenuTextItem.Copy()
	e.aTextDisabled = th.MenuTextDisabled.Copy()
	e.aTextSelected = th.MenuTextHilite.Copy()
	return e
}

// Entry returns the menu entry currently displayed.
func (e *EntryFrame) Entry() menu.Entry { return e.entry }

// Frame returns the menu frame the entry belongs to.
func (e *EntryFrame) Frame() *MenuFrame { return e.frame }

// Area is the entry's rectangle relative to its frame's items band.
func (e *EntryFrame) Area() geom.Rect { return e.area }

func (e *EntryFrame) Kind() menu.Kind { return menu.KindOf(e.entry) }

func (e *EntryFrame) isSelected() bool {
	return e.frame.selected == e
}

func (e *EntryFrame) background() *theme.Appearance {
	switch {
	case !e.entry.Enabled():
		return e.aDisabled
	case e.isSelected():
		return e.aSelected
	default:
		return e.aNormal
	}
}

func (e *EntryFrame) textAppearance() *theme.Appearance {
	switch {
	case !e.entry.Enabled():
		return e.aTextDisabled
	case e.isSelected():
		return e.aTextSelected
	default:
		return e.aTextNormal
	}
}

// measure loads the entry text into its current text appearance and returns
// the size the entry needs.
func (e *EntryFrame) measure() (int, int) {
	r := describe(e.entry)
	if r.separator {
		return 0, e.frame.mgr.theme.SeparatorRows()
	}
	a := e.textAppearance()
	a.SetText(r.text)
	return e.frame.mgr.renderer.MinSize(a)
}

func (e *EntryFrame) render() {
	f := e.frame
	d := f.mgr.display
	rr := f.mgr.renderer
	r := describe(e.entry)

	itemA := e.background()
	th := f.itemH
	if r.separator {
		th = f.mgr.theme.SeparatorRows()
	}
	e.area.SetSize(f.innerW, th)
	d.ResizeWindow(e.window, e.area.Width, e.area.Height)
	itemA.SetParent(f.aItems, e.area.X, e.area.Y)
	rr.Paint(itemA, e.window, e.area.Width, e.area.Height)

	if r.separator {
		d.UnmapWindow(e.text)
	} else {
		textA := e.textAppearance()
		textA.SetText(r.text)
		d.MoveResizeWindow(e.text, f.textX, 0, f.textW, f.itemH)
		textA.SetParent(itemA, f.textX, 0)
		rr.Paint(textA, e.text, f.textW, f.itemH)
		d.MapWindow(e.text)
	}

	// TODO: paint entry icons into e.icon with e.aIcon once entries carry
	// image data; until then the icon surface stays unmapped.
	d.UnmapWindow(e.icon)

	if r.bullet {
		bx := f.textX + f.textW
		d.MoveResizeWindow(e.bullet, bx, 0, f.itemH, f.itemH)
		e.aBullet.SetParent(itemA, bx, 0)
		rr.Paint(e.aBullet, e.bullet, f.itemH, f.itemH)
		d.MapWindow(e.bullet)
	} else {
		d.UnmapWindow(e.bullet)
	}
}

func (e *EntryFrame) destroy() {
	d := e.frame.mgr.display
	d.DestroyWindow(e.icon)
	d.DestroyWindow(e.text)
	d.DestroyWindow(e.bullet)
	d.DestroyWindow(e.window)

	e.aNormal, e.aDisabled, e.aSelected = nil, nil, nil
	e.aIcon, e.aBullet = nil, nil
	e.aTextNormal, e.aTextDisabled, e.aTextSelected = nil, nil, nil
}
