package backend

import (
	"os"

	"github.com/atomicstack/cascade-menu/internal/geom"
	"golang.org/x/term"
)

// DetectMonitor returns the area of the terminal attached to f, when f is a
// terminal whose size can be read.
func DetectMonitor(f *os.File) (geom.Rect, bool) {
	if f == nil {
		return geom.Rect{}, false
	}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return geom.Rect{}, false
	}
	width, height, err := term.GetSize(fd)
	if err != nil || width <= 0 || height <= 0 {
		return geom.Rect{}, false
	}
	return geom.NewRect(0, 0, width, height), true
}
