// Package state provides the client-side state container for the todo UI.
//
// # Overview
//
// A Store holds the item list together with a loading flag and the message
// of the last failed operation. It exposes the four operations of the todo
// service (FetchAll, Create, Update, Delete) and applies their results.
//
// # Operation Lifecycle
//
// Each operation is split into two steps so the UI can render the loading
// state before the backend answers:
//
//	job, err := store.Create(ctx, "Buy milk") // Loading = true, Error = ""
//	if errors.Is(err, state.ErrBusy) {
//		// another operation is in flight; nothing changed
//	}
//	err = job() // backend call, then result applied, Loading = false
//
// The dispatch step fails with ErrBusy while an operation is in flight, so
// at most one operation is outstanding at any time. This holds for every
// caller, including the background refresh poller, not just the UI. A
// dispatched Job must be run; until it is the store stays busy.
//
// # Reducer Rules
//
//	fetch   replace Items with the backend's list, in its order
//	create  append the returned item
//	update  replace the item with the same id (no match: no change)
//	delete  drop the item with the returned id (no match: no change)
//	failure keep Items, set Error, bump ConsecutiveFailures
//
// Loading and Pending are cleared and LastUpdated is stamped on every
// completion, successful or not.
//
// # Concurrency Model
//
// The snapshot is guarded by a sync.RWMutex. Snapshot returns a copy whose
// Items slice is independent of the store, so the UI may read it freely
// while a Job runs on another goroutine. The lock is never held across a
// backend call.
package state
