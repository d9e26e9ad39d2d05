package events

import "github.com/atomicstack/cascade-menu/internal/logging"

type AppTracer struct{}

type WatchTracer struct{}

var (
	App   = AppTracer{}
	Watch = WatchTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

func (WatchTracer) Reload(path string, changed []string) {
	logging.Trace("watch.reload", map[string]interface{}{"path": path, "changed": changed})
}

func (WatchTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("watch.error", map[string]interface{}{"path": path, "error": err.Error()})
}
