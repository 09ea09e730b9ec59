package dispatch

import (
	"encoding/json"
	"log"
)

// MessageType identifies the payload carried by a stream envelope.
// The set is closed so that dispatch over it can be exhaustive; strings
// outside the set decode to MessageUnknown and are dropped, which keeps
// the client forward compatible with server-added types.
type MessageType int

const (
	MessageUnknown MessageType = iota
	MessageDriverUpdates
	MessageZoneUpdates
	MessageRequestUpdates
	MessagePong
	MessagePing
)

// String returns the wire name of the message type.
func (mt MessageType) String() string {
	switch mt {
	case MessageDriverUpdates:
		return "driver_updates"
	case MessageZoneUpdates:
		return "zone_updates"
	case MessageRequestUpdates:
		return "request_updates"
	case MessagePong:
		return "pong"
	case MessagePing:
		return "ping"
	default:
		return "unknown"
	}
}

// ParseMessageType maps a wire name onto the closed type set.
func ParseMessageType(s string) MessageType {
	switch s {
	case "driver_updates":
		return MessageDriverUpdates
	case "zone_updates":
		return MessageZoneUpdates
	case "request_updates":
		return MessageRequestUpdates
	case "pong":
		return MessagePong
	case "ping":
		return MessagePing
	default:
		return MessageUnknown
	}
}

// Envelope is the {type, data} wrapper around every stream message.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandlerFunc receives the data payload of a matched envelope. Handlers
// must return promptly; long work is the handler's job to defer.
type HandlerFunc func(data json.RawMessage)

// Router dispatches decoded envelopes to registered handlers.
type Router struct {
	handlers map[MessageType][]HandlerFunc
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{handlers: map[MessageType][]HandlerFunc{}}
}

// Register appends a handler for the given type. Multiple handlers per
// type are allowed and run in registration order.
func (r *Router) Register(mt MessageType, h HandlerFunc) {
	if mt == MessageUnknown || h == nil {
		return
	}
	r.handlers[mt] = append(r.handlers[mt], h)
}

// HandleFrame decodes one raw frame and dispatches it. Errors never
// propagate: a malformed frame is dropped with a log line, a pong or an
// unhandled type is dropped silently, and a panicking handler is
// isolated from the handlers after it.
func (r *Router) HandleFrame(frame []byte) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		log.Printf("dispatch: dropping malformed frame: %v", err)
		return
	}
	mt := ParseMessageType(env.Type)
	if mt == MessagePong {
		// heartbeat response, nothing to do
		return
	}
	if mt == MessageUnknown {
		return
	}
	hs := r.handlers[mt]
	if len(hs) == 0 {
		return
	}
	for _, h := range hs {
		invoke(mt, h, env.Data)
	}
}

func invoke(mt MessageType, h HandlerFunc, data json.RawMessage) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("dispatch: handler for %s panicked: %v", mt, rec)
		}
	}()
	h(data)
}
