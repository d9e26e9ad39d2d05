package backend

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/cascade-menu/internal/menu"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindMenus Kind = iota
)

// DefaultInterval is used when a watcher is created with a non-positive
// interval.
const DefaultInterval = 500 * time.Millisecond

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// MenuSnapshot is the content of a menu file after a change.
type MenuSnapshot struct {
	Path    string
	Menus   []*menu.Menu
	ModTime time.Time
}

// LoadFunc parses the menu file at path.
type LoadFunc func(path string) ([]*menu.Menu, error)

type fileStamp struct {
	modTime time.Time
	size    int64
}

// Watcher polls a menu file at a fixed interval and publishes an event each
// time its content changes or it becomes unreadable.
type Watcher struct {
	path     string
	interval time.Duration
	load     LoadFunc

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. The file's state at start is taken as the
// baseline, so the first event reports the first change. The watcher stops
// when ctx is cancelled or Stop is called.
func NewWatcher(ctx context.Context, path string, interval time.Duration, load LoadFunc) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		path:     path,
		interval: interval,
		load:     load,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startFilePoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events. It is closed once the watcher
// has stopped.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current check
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startFilePoller() {
	throttle := newThrottle(w.interval / 2)
	last, lastErr := w.stamp()

	w.wg.Add(1)
	go w.poll(KindMenus, func(ctx context.Context) (interface{}, bool, error) {
		if !throttle.wait(ctx) {
			return nil, false, nil
		}
		cur, err := w.stamp()
		if err != nil {
			report := lastErr == nil || lastErr.Error() != err.Error()
			lastErr = err
			return nil, report, err
		}
		recovered := lastErr != nil
		lastErr = nil
		if cur == last && !recovered {
			return nil, false, nil
		}
		last = cur
		menus, err := w.load(w.path)
		if err != nil {
			return nil, true, err
		}
		return MenuSnapshot{Path: w.path, Menus: menus, ModTime: cur.modTime}, true, nil
	})
}

func (w *Watcher) stamp() (fileStamp, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		return fileStamp{}, err
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size()}, nil
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, bool, error)) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			data, changed, err := fetch(w.ctx)
			if !changed {
				continue
			}
			evt := Event{Kind: kind, Data: data, Err: err}
			select {
			case <-w.ctx.Done():
				return
			case w.events <- evt:
			}
		}
	}
}
