// Package transport owns the persistent connection to the SmartZone
// stream: dialing, the heartbeat ping, death detection and reconnection
// with geometric backoff, and clean shutdown.
//
// The client is an explicit state machine (Disconnected, Connecting,
// Connected, Reconnecting, Closed). Closed is only reached through
// Disconnect or a normal close from the peer, never through failure; a
// failed connection retries up to the attempt ceiling and then parks in
// Disconnected until the host calls Connect again.
//
// Liveness is deliberately weak: a ping is sent on a fixed timer and the
// matching pong is never verified. The connection is considered dead
// only when the transport itself reports a close or error.
package transport
