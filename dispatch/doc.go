// Package dispatch decodes inbound stream frames into typed envelopes
// and routes them to registered handlers.
//
// The router never lets a bad frame hurt the connection: frames that are
// not valid JSON, carry an unknown type, or have no registered handler
// are logged (or silently) dropped, and a handler that panics does not
// stop the remaining handlers or future frames.
package dispatch
