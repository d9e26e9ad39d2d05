package ui

import (
	"reflect"

	"github.com/atomicstack/cascade-menu/internal/backend"
	"github.com/atomicstack/cascade-menu/internal/data/dispatcher"
	"github.com/atomicstack/cascade-menu/internal/frame"
	"github.com/atomicstack/cascade-menu/internal/logging/events"
	"github.com/atomicstack/cascade-menu/internal/menu"
	"github.com/atomicstack/cascade-menu/internal/theme"
	uistate "github.com/atomicstack/cascade-menu/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type msgHandler func(tea.Msg) tea.Cmd

// QuitSignal lets menu actions ask the program to exit once the current event
// has been handled. Its Action method is a menu.ActionBuilder.
type QuitSignal struct {
	requested bool
}

// Exit returns a menu action that requests exit.
func (q *QuitSignal) Exit() menu.Action {
	return func(menu.Client) error {
		q.requested = true
		return nil
	}
}

// Action builds the exit action from a menu file; it takes no arguments.
func (q *QuitSignal) Action(map[string]string) (menu.Action, error) {
	return q.Exit(), nil
}

// Requested reports whether an exit was requested.
func (q *QuitSignal) Requested() bool {
	return q != nil && q.requested
}

// Config wires a Model to its collaborators.
type Config struct {
	Terminal *backend.Terminal
	Registry *menu.Registry
	Theme    *theme.Theme
	Watcher  *backend.Watcher
	Quit     *QuitSignal
	// Width and Height fix the canvas size. Zero values follow window-size
	// messages.
	Width  int
	Height int
}

// Model implements the Bubble Tea model driving the menu frames. It plays
// the part of the window manager event loop: pointer and key input is routed
// to the frame manager, and reloads of the menu file refresh open menus.
type Model struct {
	term       *backend.Terminal
	mgr        *frame.Manager
	registry   *menu.Registry
	dispatcher *dispatcher.Dispatcher
	watcher    *backend.Watcher
	quit       *QuitSignal

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	keys      keyMap
	typeahead uistate.TypeAhead
	errMsg    string
	infoMsg   string

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI with no menu open.
func NewModel(cfg Config) *Model {
	term := cfg.Terminal
	if term == nil {
		term = backend.NewTerminal()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = menu.DefaultRegistry()
	}
	m := &Model{
		term: term,
		mgr: frame.NewManager(frame.Config{
			Display:  term,
			Renderer: term,
			Grabber:  term,
			Screen:   term,
			Theme:    cfg.Theme,
		}),
		registry:   registry,
		dispatcher: dispatcher.New(registry),
		watcher:    cfg.Watcher,
		quit:       cfg.Quit,
		width:      defaultWidth,
		height:     defaultHeight,
		keys:       defaultKeyMap(),
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	m.resizeScreen()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForBackendEvent(m.watcher)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.quit.Requested() {
		cmds = append(cmds, tea.Quit)
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth && size.Width > 0 {
		m.width = size.Width
	}
	if !m.fixedHeight && size.Height > 0 {
		m.height = size.Height
	}
	events.Input.Resize(m.width, m.height)
	m.resizeScreen()
	return nil
}

// resizeScreen keeps the derived monitor in step with the canvas, which is
// everything above the status line.
func (m *Model) resizeScreen() {
	m.term.Resize(m.width, m.canvasHeight())
}

func (m *Model) canvasHeight() int {
	return max(m.height-1, 0)
}

// Manager exposes the frame manager.
func (m *Model) Manager() *frame.Manager {
	return m.mgr
}

// Terminal exposes the backend terminal.
func (m *Model) Terminal() *backend.Terminal {
	return m.term
}

// Registry exposes the menu registry.
func (m *Model) Registry() *menu.Registry {
	return m.registry
}
