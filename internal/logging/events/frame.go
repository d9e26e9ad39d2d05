package events

import "github.com/atomicstack/cascade-menu/internal/logging"

type FrameTracer struct{}

type GrabTracer struct{}

type SelectTracer struct{}

var (
	Frame  = FrameTracer{}
	Grab   = GrabTracer{}
	Select = SelectTracer{}
)

func (FrameTracer) Show(menuID, parentID string, visible int) {
	logging.Trace("frame.show", map[string]interface{}{
		"menu":    menuID,
		"parent":  parentID,
		"visible": visible,
	})
}

func (FrameTracer) Hide(menuID string, visible int) {
	logging.Trace("frame.hide", map[string]interface{}{"menu": menuID, "visible": visible})
}

func (FrameTracer) Sync(menuID string, entries, created, destroyed int) {
	logging.Trace("frame.sync", map[string]interface{}{
		"menu":      menuID,
		"entries":   entries,
		"created":   created,
		"destroyed": destroyed,
	})
}

func (FrameTracer) Render(menuID string, width, height int) {
	logging.Trace("frame.render", map[string]interface{}{"menu": menuID, "width": width, "height": height})
}

func (FrameTracer) MoveOnScreen(menuID string, dx, dy int) {
	logging.Trace("frame.move-on-screen", map[string]interface{}{"menu": menuID, "dx": dx, "dy": dy})
}

func (GrabTracer) Acquire() {
	logging.Trace("grab.acquire", nil)
}

func (GrabTracer) Release() {
	logging.Trace("grab.release", nil)
}

func (SelectTracer) Entry(menuID, entryID string) {
	logging.Trace("select.entry", map[string]interface{}{"menu": menuID, "entry": entryID})
}

func (SelectTracer) Clear(menuID string) {
	logging.Trace("select.clear", map[string]interface{}{"menu": menuID})
}

func (SelectTracer) Submenu(parentID, submenuID string, x, y int) {
	logging.Trace("select.submenu", map[string]interface{}{
		"parent":  parentID,
		"submenu": submenuID,
		"x":       x,
		"y":       y,
	})
}
