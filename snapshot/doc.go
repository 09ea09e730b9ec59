// Package snapshot performs the one-time pull of each entity domain
// before the stream takes over, plus the simulation control calls.
//
// A failed fetch is returned to the caller as-is; the engine surfaces it
// as an empty initial state and does not retry on its own.
package snapshot
