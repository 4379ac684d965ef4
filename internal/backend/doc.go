// Package backend simulates the remote todo service.
//
// A Mock owns the authoritative item collection for a session. Every call
// waits a fixed latency (300ms by default) before touching the
// collection, so a call abandoned through its context leaves no trace.
// Identifiers come from a counter initialised past the largest seeded id
// and are never reused.
//
// Failures only happen when asked for: a blank title passed to Create,
// a cancelled context, or a FaultFunc installed with WithFault (FailOps
// builds one from the config's fail_ops list).
//
// Seed data is read from a YAML file by LoadSeed; without one the Mock
// starts from DefaultItems.
package backend
