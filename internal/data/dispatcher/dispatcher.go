package dispatcher

import (
	"github.com/atomicstack/cascade-menu/internal/backend"
	"github.com/atomicstack/cascade-menu/internal/logging/events"
	"github.com/atomicstack/cascade-menu/internal/menu"
)

// Result reports what a backend event changed.
type Result struct {
	MenusUpdated bool
	// Changed lists the IDs of existing menus whose content changed.
	Changed []string
	Err     error
}

type Dispatcher struct {
	registry *menu.Registry
}

func New(r *menu.Registry) *Dispatcher {
	return &Dispatcher{registry: r}
}

// Handle applies evt to the registry. Failed reloads leave the registry
// untouched and are returned in Result.Err.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	path := ""
	if snapshot, ok := evt.Data.(backend.MenuSnapshot); ok {
		path = snapshot.Path
	}
	if evt.Err != nil {
		events.Watch.Error(path, evt.Err)
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindMenus:
		if snapshot, ok := evt.Data.(backend.MenuSnapshot); ok && len(snapshot.Menus) > 0 {
			res.Changed = d.registry.Replace(snapshot.Menus)
			res.MenusUpdated = true
			events.Watch.Reload(snapshot.Path, res.Changed)
		}
	}
	return res
}
