package transport

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultHeartbeatInterval is the fixed ping period while connected.
const DefaultHeartbeatInterval = 30 * time.Second

// writeWait bounds every write to the peer.
const writeWait = 10 * time.Second

// Options configures a Client. Zero values fall back to the service
// defaults; OnFrame and OnEvent may be nil.
type Options struct {
	HeartbeatInterval    time.Duration
	BackoffBase          time.Duration
	BackoffRatio         float64
	MaxReconnectAttempts int

	// OnFrame receives every raw inbound frame, in delivery order, on
	// the read loop. The callback must not block.
	OnFrame func(frame []byte)

	// OnEvent receives lifecycle transitions for UI binding.
	OnEvent func(e Event)

	// Dialer overrides the websocket dialer, mainly for tests.
	Dialer *websocket.Dialer
}

// pingEnvelope is the outbound heartbeat frame.
type pingEnvelope struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// Client maintains one persistent connection to the stream endpoint.
// All state transitions happen under mu; goroutines spawned for a
// connection carry a generation number so that callbacks belonging to a
// superseded connection become no-ops.
type Client struct {
	url  string
	opts Options

	mu     sync.Mutex
	state  State
	conn   *websocket.Conn
	gen    uint64
	retry  *time.Timer
	hbStop chan struct{}
	bo     *backoff

	writeMu sync.Mutex
}

// NewClient creates a client for the given stream URL. The client owns
// its lifecycle explicitly: construct, Connect, Disconnect.
func NewClient(url string, opts Options) *Client {
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = DefaultBackoffBase
	}
	if opts.BackoffRatio <= 0 {
		opts.BackoffRatio = DefaultBackoffRatio
	}
	if opts.MaxReconnectAttempts <= 0 {
		opts.MaxReconnectAttempts = DefaultMaxAttempts
	}
	return &Client{
		url:   url,
		opts:  opts,
		state: StateDisconnected,
		bo:    newBackoff(opts.BackoffBase, opts.BackoffRatio, opts.MaxReconnectAttempts),
	}
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connected reports whether a connection is currently established.
func (c *Client) Connected() bool {
	return c.State() == StateConnected
}

// Connect opens the connection. Calling it while already connected (or
// mid-reconnect) tears the existing connection down first and starts
// fresh with the attempt counter reset, so it doubles as the external
// retry trigger after the client has given up.
func (c *Client) Connect() {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.cancelRetryLocked()
	c.stopHeartbeatLocked()
	old := c.conn
	c.conn = nil
	c.bo.Reset()
	c.state = StateConnecting
	c.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	go c.dial(gen)
}

// Disconnect closes the connection cleanly and parks the client in
// Closed, regardless of current state. Pending heartbeat and reconnect
// timers are cancelled so no late callback can act on the old connection.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.gen++
	c.cancelRetryLocked()
	c.stopHeartbeatLocked()
	conn := c.conn
	c.conn = nil
	c.state = StateClosed
	c.mu.Unlock()

	if conn != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		c.writeMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		c.writeMu.Unlock()
		_ = conn.Close()
	}
}

func (c *Client) dial(gen uint64) {
	dialer := c.opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	conn, resp, err := dialer.Dial(c.url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		return
	}
	if err != nil {
		log.Printf("transport: dial %s failed: %v", c.url, err)
		gaveUp := c.scheduleReconnectLocked(gen)
		c.mu.Unlock()
		if gaveUp {
			c.emit(EventGivingUp)
		}
		return
	}
	c.conn = conn
	c.state = StateConnected
	c.bo.Reset()
	stop := make(chan struct{})
	c.hbStop = stop
	c.mu.Unlock()

	log.Printf("transport: connected to %s", c.url)

	// A Disconnect can land between the unlock above and this point;
	// re-check the generation so Established is never delivered for a
	// connection that is already torn down.
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.emit(EventEstablished)
	go c.heartbeatLoop(conn, stop)
	go c.readLoop(gen, conn)
}

func (c *Client) readLoop(gen uint64, conn *websocket.Conn) {
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			c.handleClosed(gen, conn, err)
			return
		}
		if c.opts.OnFrame != nil {
			c.opts.OnFrame(frame)
		}
	}
}

func (c *Client) handleClosed(gen uint64, conn *websocket.Conn, err error) {
	_ = conn.Close()

	c.mu.Lock()
	if gen != c.gen {
		// a newer Connect or Disconnect already took over
		c.mu.Unlock()
		return
	}
	c.stopHeartbeatLocked()
	c.conn = nil

	if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		// clean shutdown from the peer; never reconnect on 1000
		c.state = StateClosed
		c.mu.Unlock()
		log.Printf("transport: connection closed")
		return
	}

	log.Printf("transport: connection lost: %v", err)
	gaveUp := c.scheduleReconnectLocked(gen)
	c.mu.Unlock()

	c.emit(EventLost)
	if gaveUp {
		c.emit(EventGivingUp)
	}
}

// scheduleReconnectLocked arms the retry timer for the next attempt.
// Returns true when the attempt ceiling is reached and the client gives
// up, parking in Disconnected. Callers emit events after unlocking.
func (c *Client) scheduleReconnectLocked(gen uint64) (gaveUp bool) {
	delay, ok := c.bo.Next()
	if !ok {
		c.state = StateDisconnected
		log.Printf("transport: giving up after %d attempts", c.opts.MaxReconnectAttempts)
		return true
	}
	c.state = StateReconnecting
	log.Printf("transport: reconnecting in %s (attempt %d/%d)", delay, c.bo.attempt, c.opts.MaxReconnectAttempts)
	c.retry = time.AfterFunc(delay, func() {
		c.mu.Lock()
		if gen != c.gen || c.state != StateReconnecting {
			c.mu.Unlock()
			return
		}
		c.state = StateConnecting
		c.mu.Unlock()
		c.dial(gen)
	})
	return false
}

func (c *Client) heartbeatLoop(conn *websocket.Conn, stop chan struct{}) {
	ticker := time.NewTicker(c.opts.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// Fire-and-forget: the matching pong is never awaited.
			payload, _ := json.Marshal(pingEnvelope{
				Type:      "ping",
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
			c.writeMu.Lock()
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := conn.WriteMessage(websocket.TextMessage, payload)
			c.writeMu.Unlock()
			if err != nil {
				// the read loop surfaces the dead connection
				return
			}
		}
	}
}

func (c *Client) cancelRetryLocked() {
	if c.retry != nil {
		c.retry.Stop()
		c.retry = nil
	}
}

func (c *Client) stopHeartbeatLocked() {
	if c.hbStop != nil {
		close(c.hbStop)
		c.hbStop = nil
	}
}

func (c *Client) emit(e Event) {
	if c.opts.OnEvent != nil {
		c.opts.OnEvent(e)
	}
}
