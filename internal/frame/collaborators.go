package frame

import (
	"github.com/atomicstack/cascade-menu/internal/geom"
	"github.com/atomicstack/cascade-menu/internal/theme"
)

// Window is a handle to a surface owned by the display.
type Window uint32

// None is the zero window handle.
const None Window = 0

// EventMask selects the input events a surface reports.
type EventMask uint32

const (
	ButtonPressMask EventMask = 1 << iota
	ButtonReleaseMask
	ButtonMotionMask
	EnterWindowMask
	LeaveWindowMask
)

const (
	FrameEventMask = ButtonPressMask | ButtonMotionMask | EnterWindowMask | LeaveWindowMask
	TitleEventMask = ButtonPressMask | ButtonMotionMask
	EntryEventMask = EnterWindowMask | LeaveWindowMask | ButtonPressMask | ButtonReleaseMask
)

// Display is the windowing service menus are drawn on.
type Display interface {
	RootWindow() Window
	// CreateWindow returns a new unmapped 1x1 surface at (0, 0) in parent.
	CreateWindow(parent Window, mask EventMask) Window
	DestroyWindow(w Window)
	MoveWindow(w Window, x, y int)
	ResizeWindow(w Window, width, height int)
	MoveResizeWindow(w Window, x, y, width, height int)
	MapWindow(w Window)
	UnmapWindow(w Window)
	SetBorder(w Window, width int, color theme.Color)
	// WarpPointer moves the pointer by (dx, dy) relative to where it is.
	WarpPointer(dx, dy int)
}

// Renderer measures and paints appearances.
type Renderer interface {
	MinSize(a *theme.Appearance) (width, height int)
	Paint(a *theme.Appearance, w Window, width, height int)
}

// Grabber acquires and releases exclusive input.
type Grabber interface {
	Grab(pointer, keyboard bool)
	Ungrab(pointer, keyboard bool)
}

// Screen reports the monitor layout.
type Screen interface {
	NumMonitors() int
	MonitorArea(i int) geom.Rect
}
