package events

import "github.com/atomicstack/cascade-menu/internal/logging"

type InputTracer struct{}

var Input = InputTracer{}

func (InputTracer) Key(key string, menuOpen bool) {
	logging.Trace("input.key", map[string]interface{}{"key": key, "open": menuOpen})
}

func (InputTracer) Mouse(action, button string, x, y int) {
	logging.Trace("input.mouse", map[string]interface{}{
		"action": action,
		"button": button,
		"x":      x,
		"y":      y,
	})
}

func (InputTracer) TypeAhead(menuID, query string, index int) {
	logging.Trace("input.typeahead", map[string]interface{}{
		"menu":  menuID,
		"query": query,
		"index": index,
	})
}

func (InputTracer) Resize(width, height int) {
	logging.Trace("input.resize", map[string]interface{}{"width": width, "height": height})
}
