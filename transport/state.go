package transport

// State is the connection lifecycle state.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateClosed
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is a lifecycle transition surfaced to the host for UI binding.
type Event int

const (
	// EventEstablished fires each time a connection comes up.
	EventEstablished Event = iota
	// EventLost fires when an established connection drops abnormally.
	EventLost
	// EventGivingUp fires when the reconnect attempt ceiling is reached.
	EventGivingUp
)

// String returns the string representation of Event.
func (e Event) String() string {
	switch e {
	case EventEstablished:
		return "established"
	case EventLost:
		return "lost"
	case EventGivingUp:
		return "giving-up"
	default:
		return "unknown"
	}
}
