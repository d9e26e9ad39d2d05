package testutil

import (
	"fmt"

	"github.com/atomicstack/cascade-menu/internal/frame"
	"github.com/atomicstack/cascade-menu/internal/geom"
	"github.com/atomicstack/cascade-menu/internal/theme"
)

// Window captures everything a FakeDisplay knows about one surface.
type Window struct {
	ID          frame.Window
	Parent      frame.Window
	Mask        frame.EventMask
	X, Y        int
	Width       int
	Height      int
	BorderWidth int
	BorderColor theme.Color
	Mapped      bool
	Destroyed   bool
}

// FakeDisplay records window operations in memory.
type FakeDisplay struct {
	next    frame.Window
	Windows map[frame.Window]*Window
	Calls   []string
	Warps   [][2]int
}

// NewFakeDisplay returns a display whose root window is 1.
func NewFakeDisplay() *FakeDisplay {
	d := &FakeDisplay{next: 1, Windows: make(map[frame.Window]*Window)}
	d.Windows[1] = &Window{ID: 1, Mapped: true}
	return d
}

func (d *FakeDisplay) RootWindow() frame.Window { return 1 }

func (d *FakeDisplay) CreateWindow(parent frame.Window, mask frame.EventMask) frame.Window {
	d.next++
	d.Windows[d.next] = &Window{ID: d.next, Parent: parent, Mask: mask, Width: 1, Height: 1}
	d.Calls = append(d.Calls, fmt.Sprintf("create:%d", d.next))
	return d.next
}

func (d *FakeDisplay) DestroyWindow(w frame.Window) {
	if win, ok := d.Windows[w]; ok {
		win.Destroyed = true
		win.Mapped = false
	}
	d.Calls = append(d.Calls, fmt.Sprintf("destroy:%d", w))
}

func (d *FakeDisplay) MoveWindow(w frame.Window, x, y int) {
	if win, ok := d.Windows[w]; ok {
		win.X, win.Y = x, y
	}
}

func (d *FakeDisplay) ResizeWindow(w frame.Window, width, height int) {
	if win, ok := d.Windows[w]; ok {
		win.Width, win.Height = width, height
	}
}

func (d *FakeDisplay) MoveResizeWindow(w frame.Window, x, y, width, height int) {
	d.MoveWindow(w, x, y)
	d.ResizeWindow(w, width, height)
}

func (d *FakeDisplay) MapWindow(w frame.Window) {
	if win, ok := d.Windows[w]; ok {
		win.Mapped = true
	}
	d.Calls = append(d.Calls, fmt.Sprintf("map:%d", w))
}

func (d *FakeDisplay) UnmapWindow(w frame.Window) {
	if win, ok := d.Windows[w]; ok {
		win.Mapped = false
	}
	d.Calls = append(d.Calls, fmt.Sprintf("unmap:%d", w))
}

func (d *FakeDisplay) SetBorder(w frame.Window, width int, color theme.Color) {
	if win, ok := d.Windows[w]; ok {
		win.BorderWidth, win.BorderColor = width, color
	}
}

func (d *FakeDisplay) WarpPointer(dx, dy int) {
	d.Warps = append(d.Warps, [2]int{dx, dy})
}

// Live counts windows that were created and not yet destroyed, excluding the
// root window.
func (d *FakeDisplay) Live() int {
	n := 0
	for id, w := range d.Windows {
		if id != 1 && !w.Destroyed {
			n++
		}
	}
	return n
}

// FakeRenderer measures text as one unit per byte plus Pad on each side and
// LineHeight tall.
type FakeRenderer struct {
	Pad        int
	LineHeight int
	Paints     []Paint
}

// Paint is one recorded FakeRenderer.Paint call.
type Paint struct {
	Appearance string
	Text       string
	Window     frame.Window
	Width      int
	Height     int
}

func (r *FakeRenderer) MinSize(a *theme.Appearance) (int, int) {
	h := r.LineHeight
	if h == 0 {
		h = 1
	}
	if a.Texture.Kind != theme.TextureText {
		return 2 * r.Pad, h
	}
	return len(a.Texture.Text) + 2*r.Pad, h
}

func (r *FakeRenderer) Paint(a *theme.Appearance, w frame.Window, width, height int) {
	r.Paints = append(r.Paints, Paint{
		Appearance: a.Name,
		Text:       a.Texture.Text,
		Window:     w,
		Width:      width,
		Height:     height,
	})
}

// LastPaint returns the most recent paint of w.
func (r *FakeRenderer) LastPaint(w frame.Window) (Paint, bool) {
	for i := len(r.Paints) - 1; i >= 0; i-- {
		if r.Paints[i].Window == w {
			return r.Paints[i], true
		}
	}
	return Paint{}, false
}

// FakeGrabber counts grab transitions. When Log is set, "grab" and "ungrab"
// are appended to it so ordering against display calls can be checked.
type FakeGrabber struct {
	Grabs   int
	Ungrabs int
	Active  bool
	Log     *[]string
}

func (g *FakeGrabber) Grab(pointer, keyboard bool) {
	g.Grabs++
	g.Active = true
	if g.Log != nil {
		*g.Log = append(*g.Log, "grab")
	}
}

func (g *FakeGrabber) Ungrab(pointer, keyboard bool) {
	g.Ungrabs++
	g.Active = false
	if g.Log != nil {
		*g.Log = append(*g.Log, "ungrab")
	}
}

// FakeScreen serves a fixed list of monitors.
type FakeScreen struct {
	Monitors []geom.Rect
}

func (s *FakeScreen) NumMonitors() int { return len(s.Monitors) }

func (s *FakeScreen) MonitorArea(i int) geom.Rect { return s.Monitors[i] }

// Env bundles a manager with the fakes it was built from.
type Env struct {
	Display  *FakeDisplay
	Renderer *FakeRenderer
	Grabber  *FakeGrabber
	Screen   *FakeScreen
	Theme    *theme.Theme
	Manager  *frame.Manager
}

// NewEnv builds a manager over fakes with a single 200x100 monitor, a one
// unit border and a zero-padding renderer with line height 1.
func NewEnv() *Env {
	th := theme.Default()
	th.BorderWidth = 1
	th.MenuOverlap = 0
	th.SeparatorHeight = 1
	env := &Env{
		Display:  NewFakeDisplay(),
		Renderer: &FakeRenderer{LineHeight: 1},
		Screen:   &FakeScreen{Monitors: []geom.Rect{geom.NewRect(0, 0, 200, 100)}},
		Theme:    th,
	}
	env.Grabber = &FakeGrabber{Log: &env.Display.Calls}
	env.Manager = frame.NewManager(frame.Config{
		Display:  env.Display,
		Renderer: env.Renderer,
		Grabber:  env.Grabber,
		Screen:   env.Screen,
		Theme:    th,
	})
	return env
}
