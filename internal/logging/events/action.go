package events

import "github.com/atomicstack/cascade-menu/internal/logging"

type ActionTracer struct{}

var Action = ActionTracer{}

func (ActionTracer) Execute(menuID, entryID string, actions int) {
	logging.Trace("action.execute", map[string]interface{}{
		"menu":    menuID,
		"entry":   entryID,
		"actions": actions,
	})
}

// Error is traced and also written to the error log, since a failing action
// has no other place to surface.
func (ActionTracer) Error(entryID string, err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"entry": entryID, "error": err.Error()})
	logging.Error(err)
}

func (ActionTracer) Message(message, clientID string) {
	logging.Trace("action.message", map[string]interface{}{"message": message, "client": clientID})
}
