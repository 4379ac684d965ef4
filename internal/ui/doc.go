// Package ui provides the terminal user interface for the todo list.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds only presentation state: the
// selected row, the text inputs, the overlays and a copy of the latest
// state.Snapshot. Everything the backend owns lives in the state.Store.
//
// # Package Structure
//
//   - app.go: Model, Init/Update/View, messages, commands and Run
//   - input_handlers.go: key handling per mode (browse, add, edit, filter)
//   - view.go: header, progress bar, item rows and command bar
//   - filter.go: fuzzy title filter
//   - help.go: help overlay
//   - logs.go: log file overlay
//   - log_handler.go: slog.Handler that feeds the status bar
//   - theme.go, keys.go, layout.go, strings.go: styling and helpers
//
// # Operations
//
// A key press that changes data dispatches an operation on the store. The
// dispatch marks the store loading right away and hands back a job, which
// runs as a tea.Cmd:
//
//	space ─> store.Update(item.Toggled()) ─> Loading
//	      └> runJobCmd ─> job() ─> opDoneMsg ─> fetchSnapshotCmd ─> snapshotMsg
//
// While an operation is in flight, toggle, delete, add and save are
// ignored. The store rejects a second dispatch on its own as well.
//
// # Refresh
//
// The model pulls a snapshot every DefaultUIInterval so changes made by
// the background poller show up without a key press.
//
// # Status Bar
//
// LogHandler routes warn and error records into the program as messages.
// They replace the key help for a few seconds and then fade.
package ui
