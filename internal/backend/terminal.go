package backend

import (
	"strings"
	"sync"

	"github.com/atomicstack/cascade-menu/internal/frame"
	"github.com/atomicstack/cascade-menu/internal/geom"
	"github.com/atomicstack/cascade-menu/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const (
	rootWindow frame.Window = 1
	bulletRune              = '▸'
	ellipsis                = "…"
)

// cell is one character position of a painted surface. A nil style renders
// unstyled. Cells trailing a double-width rune are marked cont and skipped
// when composing.
type cell struct {
	r     rune
	style *lipgloss.Style
	cont  bool
}

type window struct {
	id       frame.Window
	parent   *window
	children []*window
	mask     frame.EventMask

	x, y          int
	width, height int
	borderWidth   int
	borderStyle   *lipgloss.Style
	borderFill    *lipgloss.Style
	mapped        bool

	cells          []cell
	cellsW, cellsH int
	paint          int
}

func (w *window) outer() geom.Rect {
	return geom.NewRect(w.x, w.y, w.width+2*w.borderWidth, w.height+2*w.borderWidth)
}

// Terminal is a character-cell window system. Windows form a tree under a
// root window, positions are relative to the parent's content area and
// borders lie outside the content, as on X11. Among siblings the most
// recently mapped window is on top.
//
// Terminal implements frame.Display, frame.Renderer, frame.Grabber and
// frame.Screen. It is safe for concurrent use.
type Terminal struct {
	mu sync.Mutex

	next    frame.Window
	windows map[frame.Window]*window
	root    *window

	monitors      []geom.Rect
	fixedMonitors bool

	pointerX, pointerY int

	pointerGrabbed  bool
	keyboardGrabbed bool
	grabs, ungrabs  int
}

// NewTerminal returns a terminal with the given monitors. With no monitors
// the layout follows Resize.
func NewTerminal(monitors ...geom.Rect) *Terminal {
	root := &window{id: rootWindow, mapped: true}
	t := &Terminal{
		next:          rootWindow,
		windows:       map[frame.Window]*window{rootWindow: root},
		root:          root,
		monitors:      append([]geom.Rect(nil), monitors...),
		fixedMonitors: len(monitors) > 0,
	}
	return t
}

// Resize updates the single monitor derived from the terminal size. Fixed
// monitor layouts are left alone.
func (t *Terminal) Resize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fixedMonitors {
		return
	}
	if width <= 0 || height <= 0 {
		t.monitors = nil
		return
	}
	t.monitors = []geom.Rect{geom.NewRect(0, 0, width, height)}
}

// FixedMonitors reports whether the monitor layout was configured explicitly.
func (t *Terminal) FixedMonitors() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fixedMonitors
}

func (t *Terminal) NumMonitors() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.monitors)
}

func (t *Terminal) MonitorArea(i int) geom.Rect {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.monitors[i]
}

func (t *Terminal) RootWindow() frame.Window { return rootWindow }

func (t *Terminal) CreateWindow(parent frame.Window, mask frame.EventMask) frame.Window {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.windows[parent]
	if !ok {
		p = t.root
	}
	t.next++
	w := &window{id: t.next, parent: p, mask: mask, width: 1, height: 1}
	p.children = append(p.children, w)
	t.windows[w.id] = w
	return w.id
}

// DestroyWindow removes w and its whole subtree.
func (t *Terminal) DestroyWindow(id frame.Window) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.windows[id]
	if !ok || w == t.root {
		return
	}
	if w.parent != nil {
		w.parent.children = removeChild(w.parent.children, w)
	}
	t.forget(w)
}

func (t *Terminal) forget(w *window) {
	for _, c := range w.children {
		t.forget(c)
	}
	w.children = nil
	delete(t.windows, w.id)
}

func (t *Terminal) MoveWindow(id frame.Window, x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if w, ok := t.windows[id]; ok {
		w.x, w.y = x, y
	}
}

func (t *Terminal) ResizeWindow(id frame.Window, width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if w, ok := t.windows[id]; ok {
		w.width, w.height = max(width, 0), max(height, 0)
	}
}

func (t *Terminal) MoveResizeWindow(id frame.Window, x, y, width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if w, ok := t.windows[id]; ok {
		w.x, w.y = x, y
		w.width, w.height = max(width, 0), max(height, 0)
	}
}

// MapWindow shows w and raises it above its siblings.
func (t *Terminal) MapWindow(id frame.Window) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.windows[id]
	if !ok || w == t.root {
		return
	}
	w.mapped = true
	if p := w.parent; p != nil {
		p.children = append(removeChild(p.children, w), w)
	}
}

func (t *Terminal) UnmapWindow(id frame.Window) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if w, ok := t.windows[id]; ok && w != t.root {
		w.mapped = false
	}
}

func (t *Terminal) SetBorder(id frame.Window, width int, color theme.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.windows[id]
	if !ok {
		return
	}
	w.borderWidth = max(width, 0)
	line := lipgloss.NewStyle().Foreground(color)
	fill := lipgloss.NewStyle().Background(color)
	w.borderStyle = &line
	w.borderFill = &fill
}

// Pointer returns the logical pointer position in root coordinates.
func (t *Terminal) Pointer() (x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pointerX, t.pointerY
}

// SetPointer records the pointer position reported by the terminal.
func (t *Terminal) SetPointer(x, y int) {
	t.mu.Lock()
	t.pointerX, t.pointerY = x, y
	t.mu.Unlock()
}

func (t *Terminal) WarpPointer(dx, dy int) {
	t.mu.Lock()
	t.pointerX += dx
	t.pointerY += dy
	t.mu.Unlock()
}

func (t *Terminal) Grab(pointer, keyboard bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grabs++
	t.pointerGrabbed = t.pointerGrabbed || pointer
	t.keyboardGrabbed = t.keyboardGrabbed || keyboard
}

func (t *Terminal) Ungrab(pointer, keyboard bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ungrabs++
	if pointer {
		t.pointerGrabbed = false
	}
	if keyboard {
		t.keyboardGrabbed = false
	}
}

// Grabbed reports the current pointer and keyboard grab state.
func (t *Terminal) Grabbed() (pointer, keyboard bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pointerGrabbed, t.keyboardGrabbed
}

// GrabCounts returns how many grabs and ungrabs have been requested.
func (t *Terminal) GrabCounts() (grabs, ungrabs int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.grabs, t.ungrabs
}

// WindowCount returns the number of live windows, the root included.
func (t *Terminal) WindowCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.windows)
}

// MinSize measures a as it would be painted: text width plus the style's
// horizontal padding, margins and border, by one row plus the vertical ones.
func (t *Terminal) MinSize(a *theme.Appearance) (int, int) {
	w := a.Style.GetHorizontalFrameSize()
	h := 1 + a.Style.GetVerticalFrameSize()
	switch a.Texture.Kind {
	case theme.TextureText:
		w += cellWidth(ansi.Strip(a.Texture.Text))
	case theme.TextureMask:
		w++
	}
	return w, h
}

// Paint fills the surface with a's background and draws its texture. Text is
// stripped of escape sequences, truncated with an ellipsis when it does not
// fit between the horizontal padding, justified and vertically centred.
func (t *Terminal) Paint(a *theme.Appearance, id frame.Window, width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.windows[id]
	if !ok {
		return
	}
	width, height = max(width, 0), max(height, 0)
	st := cellStyle(a.Style)

	w.cells = make([]cell, width*height)
	w.cellsW, w.cellsH = width, height
	for i := range w.cells {
		w.cells[i] = cell{r: ' ', style: st}
	}
	w.paint++
	if width == 0 || height == 0 {
		return
	}

	row := (height - 1) / 2
	switch a.Texture.Kind {
	case theme.TextureText:
		left := a.Style.GetPaddingLeft()
		avail := width - left - a.Style.GetPaddingRight()
		if avail <= 0 {
			return
		}
		text := ansi.Strip(a.Texture.Text)
		if cellWidth(text) > avail {
			text = truncate.StringWithTail(text, uint(avail), ellipsis)
		}
		x := left + justifyOffset(a.Texture.Justify, avail, cellWidth(text))
		w.putString(x, row, width, text, st)
	case theme.TextureMask:
		w.putString((width-1)/2, row, width, string(bulletRune), st)
	}
}

// Painted returns the text painted into a window, one line per row, with
// trailing spaces removed.
func (t *Terminal) Painted(id frame.Window) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.windows[id]
	if !ok || w.width == 0 {
		return ""
	}
	rows := bufferRows(w)
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], " ")
	}
	return strings.Join(rows, "\n")
}

func bufferRows(w *window) []string {
	rows := make([]string, 0, w.height)
	for y := 0; y < w.height; y++ {
		var b strings.Builder
		for x := 0; x < w.width; x++ {
			c, ok := w.cellAt(x, y)
			switch {
			case !ok:
				b.WriteByte(' ')
			case c.cont:
			default:
				b.WriteRune(c.r)
			}
		}
		rows = append(rows, b.String())
	}
	return rows
}

func (w *window) cellAt(x, y int) (cell, bool) {
	if x < 0 || y < 0 || x >= w.cellsW || y >= w.cellsH {
		return cell{}, false
	}
	return w.cells[y*w.cellsW+x], true
}

// cellWidth counts the cells putString will fill for s, rune by rune, the
// same way truncate measures.
func cellWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runewidth.RuneWidth(r)
	}
	return n
}

func (w *window) putString(x, y, width int, s string, st *lipgloss.Style) {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x < 0 || x+rw > width {
			return
		}
		w.cells[y*width+x] = cell{r: r, style: st}
		for i := 1; i < rw; i++ {
			w.cells[y*width+x+i] = cell{style: st, cont: true}
		}
		x += rw
	}
}

func justifyOffset(j theme.Justify, avail, used int) int {
	switch j {
	case theme.JustifyCenter:
		return max(0, (avail-used)/2)
	case theme.JustifyRight:
		return max(0, avail-used)
	}
	return 0
}

// cellStyle keeps the colours and attributes of s and drops everything that
// changes geometry, so it can be applied to single runs of cells.
func cellStyle(s lipgloss.Style) *lipgloss.Style {
	c := s.UnsetPadding().
		UnsetMargins().
		UnsetWidth().
		UnsetHeight().
		UnsetMaxWidth().
		UnsetMaxHeight().
		UnsetBorderStyle().
		UnsetAlign()
	return &c
}

func removeChild(children []*window, w *window) []*window {
	for i, c := range children {
		if c == w {
			return append(children[:i:i], children[i+1:]...)
		}
	}
	return children
}
