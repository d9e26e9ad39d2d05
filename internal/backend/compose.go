package backend

import (
	"strings"

	"github.com/atomicstack/cascade-menu/internal/geom"
	"github.com/charmbracelet/lipgloss"
)

type grid struct {
	width  int
	height int
	cells  []cell
}

func newGrid(width, height int) *grid {
	g := &grid{width: width, height: height, cells: make([]cell, width*height)}
	for i := range g.cells {
		g.cells[i] = cell{r: ' '}
	}
	return g
}

func (g *grid) set(x, y int, c cell) {
	g.cells[y*g.width+x] = c
}

// Compose renders every mapped window onto a width by height canvas and
// returns it as lines joined by newlines. Children are clipped to their
// parent's content area and drawn in stacking order.
func (t *Terminal) Compose(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	g := newGrid(width, height)
	screen := geom.NewRect(0, 0, width, height)
	for _, c := range t.root.children {
		g.draw(c, 0, 0, screen)
	}
	return g.String()
}

func (g *grid) draw(w *window, ox, oy int, clip geom.Rect) {
	if !w.mapped {
		return
	}
	outer := w.outer()
	outer.SetPoint(outer.X+ox, outer.Y+oy)
	if outer.Intersect(clip).Empty() {
		return
	}
	bw := w.borderWidth
	content := geom.NewRect(outer.X+bw, outer.Y+bw, w.width, w.height)

	if bw > 0 {
		g.border(outer, content, bw, clip, w)
	}

	visible := content.Intersect(clip)
	for y := visible.Y; y < visible.Bottom(); y++ {
		for x := visible.X; x < visible.Right(); x++ {
			c, ok := w.cellAt(x-content.X, y-content.Y)
			if !ok {
				c = cell{r: ' '}
			}
			g.set(x, y, c)
		}
	}
	if visible.Empty() {
		return
	}
	for _, c := range w.children {
		g.draw(c, content.X, content.Y, visible)
	}
}

func (g *grid) border(outer, content geom.Rect, bw int, clip geom.Rect, w *window) {
	visible := outer.Intersect(clip)
	for y := visible.Y; y < visible.Bottom(); y++ {
		for x := visible.X; x < visible.Right(); x++ {
			if content.Contains(x, y) {
				continue
			}
			if onEdge(outer, x, y) {
				g.set(x, y, cell{r: boxRune(outer, x, y), style: w.borderStyle})
			} else {
				g.set(x, y, cell{r: ' ', style: w.borderFill})
			}
		}
	}
}

func onEdge(r geom.Rect, x, y int) bool {
	return x == r.X || y == r.Y || x == r.Right()-1 || y == r.Bottom()-1
}

func boxRune(r geom.Rect, x, y int) rune {
	left, right := x == r.X, x == r.Right()-1
	top, bottom := y == r.Y, y == r.Bottom()-1
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top || bottom:
		return '─'
	}
	return '│'
}

// String renders the grid, styling runs of cells that share a style.
func (g *grid) String() string {
	lines := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		var (
			b   strings.Builder
			run strings.Builder
			cur *lipgloss.Style
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == nil {
				b.WriteString(run.String())
			} else {
				b.WriteString(cur.Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < g.width; x++ {
			c := g.cells[y*g.width+x]
			if c.cont {
				continue
			}
			if c.style != cur {
				flush()
				cur = c.style
			}
			run.WriteRune(c.r)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
