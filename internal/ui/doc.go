// Package ui contains the Bubble Tea program that plays the window manager's
// event loop for cascading menus. The Model type routes messages; the frame
// manager in internal/frame owns every menu decision.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Pointer messages (navigation.go) are hit-tested with Manager.EntryUnder
//     and FrameUnder. Motion selects, a left release executes, a press outside
//     every frame closes all menus, and a right press on the desktop opens the
//     root menu at the pointer.
//   - Key messages (input.go) are matched against bubbles/key bindings and act
//     on the active frame: the deepest open frame with a selection. Printable
//     text feeds a fuzzy type-ahead that selects the best matching entry.
//
// Backend interactions:
//   - backend.Terminal is the display, renderer, input grabber and screen the
//     frames draw on; View composes it above a one line status bar.
//   - A backend.Watcher streams menu file changes. Update waits for those
//     events and hands them to the dispatcher, which swaps the new menus into
//     the registry; visible frames whose menus changed are refreshed.
package ui
