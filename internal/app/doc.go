// Package app is the composition root for the todo UI.
//
// # Overview
//
// Run wires configuration, preferences, logging, the mock backend, the
// state store, the optional refresh poller and the UI, then blocks until
// the user quits or the context is cancelled.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()       TOML config + flag overrides
//	       ├─────> prefs.Load()        theme, hide completed
//	       ├─────> backend.LoadSeed()  initial items
//	       ├─────> backend.NewMock()   latency + fault injection
//	       ├─────> state.New()         store shared by UI and poller
//	       ├─────> StartPoller()       only when refresh > 0
//	       └─────> ui.Run()            blocks
//
// # Polling Behavior
//
// The poller dispatches a fetch every refresh interval. A tick that finds
// the store busy is skipped. After consecutive failures the wait doubles,
// capped at 30 seconds, and resets on the next success.
//
// # Error Handling
//
// Config and seed failures, and a log file that cannot be opened, are
// returned from Run. Preference problems fall back to defaults. Failed
// operations at runtime are recorded in the store and shown by the UI.
package app
