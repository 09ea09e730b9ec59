// Package smartzone is the real-time synchronization engine behind the
// SmartZone dashboard: it pulls an initial snapshot of drivers, demand
// zones and ride requests over REST, then keeps the local state current
// from the service's WebSocket stream, exposing read-only snapshots and
// rendering-ready projections to the host.
//
// The engine is correct under at-least-once, unordered delivery: every
// inbound domain message is treated as the complete authoritative set
// for that domain, so duplicates and reordering cannot corrupt state.
package smartzone
