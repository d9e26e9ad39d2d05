package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/atomicstack/cascade-menu/internal/backend"
	"github.com/atomicstack/cascade-menu/internal/geom"
	"github.com/atomicstack/cascade-menu/internal/logging/events"
	"github.com/atomicstack/cascade-menu/internal/menu"
	"github.com/atomicstack/cascade-menu/internal/theme"
	"github.com/atomicstack/cascade-menu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// Config describes user-provided application options.
type Config struct {
	MenuFile      string
	Monitors      []geom.Rect
	BorderWidth   int
	Overlap       int
	Watch         bool
	WatchInterval time.Duration
	Width         int
	Height        int
}

// Run bootstraps and executes the Bubble Tea program. It returns once the
// program has exited and the menu file watcher, if any, has drained.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model, watcher, err := Build(ctx, cfg)
	if err != nil {
		return err
	}
	if !model.Terminal().FixedMonitors() {
		if r, ok := backend.DetectMonitor(os.Stdout); ok {
			model.Update(tea.WindowSizeMsg{Width: r.Width, Height: r.Height})
		}
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	g := new(errgroup.Group)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	if watcher != nil {
		g.Go(func() error {
			watcher.Wait()
			return nil
		})
	}
	err = g.Wait()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	if err != nil {
		events.App.Stop("error")
		return err
	}
	events.App.Stop("exit")
	return nil
}

// Build assembles the model and, when watching is enabled, the watcher
// feeding it. The watcher stops when ctx is cancelled.
func Build(ctx context.Context, cfg Config) (*ui.Model, *backend.Watcher, error) {
	quit := &ui.QuitSignal{}
	actions := menu.DefaultActions().With("exit", quit.Action)

	registry, err := buildRegistry(cfg.MenuFile, actions, quit)
	if err != nil {
		return nil, nil, err
	}

	th := theme.Default()
	th.BorderWidth = cfg.BorderWidth
	th.MenuOverlap = cfg.Overlap

	var watcher *backend.Watcher
	if cfg.Watch && cfg.MenuFile != "" {
		loader := menu.NewLoader(actions)
		watcher = backend.NewWatcher(ctx, cfg.MenuFile, cfg.WatchInterval, loader.LoadFile)
	}

	model := ui.NewModel(ui.Config{
		Terminal: backend.NewTerminal(cfg.Monitors...),
		Registry: registry,
		Theme:    th,
		Watcher:  watcher,
		Quit:     quit,
		Width:    cfg.Width,
		Height:   cfg.Height,
	})
	return model, watcher, nil
}

func buildRegistry(path string, actions menu.ActionSet, quit *ui.QuitSignal) (*menu.Registry, error) {
	if path != "" {
		registry, err := menu.LoadRegistry(path, actions)
		if err != nil {
			return nil, fmt.Errorf("load menus: %w", err)
		}
		return registry, nil
	}
	registry := menu.DefaultRegistry()
	if root := registry.Root(); root != nil {
		root.Entries = append(root.Entries, menu.Separator(), menu.Normal("Exit", quit.Exit()))
	}
	return registry, nil
}
