package smartzone

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/encryptedtouhid/SmartZone/config"
	"github.com/encryptedtouhid/SmartZone/dispatch"
	"github.com/encryptedtouhid/SmartZone/model"
	"github.com/encryptedtouhid/SmartZone/projection"
	"github.com/encryptedtouhid/SmartZone/snapshot"
	"github.com/encryptedtouhid/SmartZone/store"
	"github.com/encryptedtouhid/SmartZone/transport"
)

// Options tunes a Client beyond what the configuration file carries.
type Options struct {
	// OnEvent receives connection lifecycle events for UI binding.
	OnEvent func(e transport.Event)
}

// Client wires the snapshot loader, the stream transport, the message
// router and the per-domain stores into one engine instance. Construct
// it, load the snapshot, connect, and read projections on demand; the
// stores have no mutation surface outside the stream handlers.
type Client struct {
	cfg    config.AppConfig
	loader *snapshot.Loader
	router *dispatch.Router
	stream *transport.Client

	drivers  *store.Store[model.Driver]
	zones    *store.Store[model.Zone]
	requests *store.Store[model.RideRequest]

	mu       sync.Mutex
	lastTick map[dispatch.MessageType]string
}

// NewClient builds an engine for the configured service.
func NewClient(cfg config.AppConfig, opts Options) (*Client, error) {
	wsURL, err := config.WebSocketURL(cfg.Service.BaseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:      cfg,
		loader:   snapshot.NewLoader(cfg.Service.BaseURL, time.Duration(cfg.Service.TimeoutMS)*time.Millisecond),
		router:   dispatch.NewRouter(),
		drivers:  store.New[model.Driver](),
		zones:    store.New[model.Zone](),
		requests: store.New[model.RideRequest](),
		lastTick: map[dispatch.MessageType]string{},
	}
	c.router.Register(dispatch.MessageDriverUpdates, c.onDriverUpdates)
	c.router.Register(dispatch.MessageZoneUpdates, c.onZoneUpdates)
	c.router.Register(dispatch.MessageRequestUpdates, c.onRequestUpdates)

	c.stream = transport.NewClient(wsURL, transport.Options{
		HeartbeatInterval:    time.Duration(cfg.Stream.HeartbeatMS) * time.Millisecond,
		BackoffBase:          time.Duration(cfg.Stream.BackoffBaseMS) * time.Millisecond,
		BackoffRatio:         cfg.Stream.BackoffRatio,
		MaxReconnectAttempts: cfg.Stream.MaxReconnectAttempts,
		OnFrame:              c.router.HandleFrame,
		OnEvent:              opts.OnEvent,
	})
	return c, nil
}

// LoadSnapshot performs the one-time pull of all three domains. On error
// the stores keep whatever they already hold (empty at startup) and the
// caller decides whether to retry.
func (c *Client) LoadSnapshot(ctx context.Context) error {
	drivers, err := c.loader.Drivers(ctx)
	if err != nil {
		return err
	}
	zones, err := c.loader.Zones(ctx)
	if err != nil {
		return err
	}
	requests, err := c.loader.Requests(ctx)
	if err != nil {
		return err
	}
	c.drivers.ReplaceAll(drivers)
	c.zones.ReplaceAll(zones)
	c.requests.ReplaceAll(requests)
	return nil
}

// Connect opens the stream. Safe to call again after the transport gave
// up, e.g. when the page becomes visible.
func (c *Client) Connect() { c.stream.Connect() }

// Disconnect shuts the stream down cleanly.
func (c *Client) Disconnect() { c.stream.Disconnect() }

// Connected reports whether the stream is currently up.
func (c *Client) Connected() bool { return c.stream.Connected() }

// ConnectionState returns the transport lifecycle state.
func (c *Client) ConnectionState() transport.State { return c.stream.State() }

// Loader exposes the REST client for provisioning and simulation control.
func (c *Client) Loader() *snapshot.Loader { return c.loader }

// Drivers returns the current driver set in insertion order.
func (c *Client) Drivers() []model.Driver { return c.drivers.Snapshot() }

// Zones returns the current zone set in insertion order.
func (c *Client) Zones() []model.Zone { return c.zones.Snapshot() }

// Requests returns the current ride request set in insertion order.
func (c *Client) Requests() []model.RideRequest { return c.requests.Snapshot() }

// TopZones returns the configured top-N zones by demand level.
func (c *Client) TopZones() []model.Zone {
	return projection.TopZonesByDemand(c.zones.Snapshot(), c.cfg.Projection.TopZones)
}

// ActiveRequests returns non-terminal requests, pending first, capped at
// the configured recency limit.
func (c *Client) ActiveRequests() []model.RideRequest {
	active := projection.ActiveRequests(c.requests.Snapshot())
	recent := projection.RecentRequests(active, c.cfg.Projection.RecentRequests)
	return projection.PendingFirst(recent)
}

// AvailableDrivers returns drivers that can take a ride.
func (c *Client) AvailableDrivers() []model.Driver {
	return projection.AvailableDrivers(c.drivers.Snapshot())
}

// LastTick returns the service timestamp of the most recent message for
// a domain, if one arrived.
func (c *Client) LastTick(mt dispatch.MessageType) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ts, ok := c.lastTick[mt]
	return ts, ok
}

func (c *Client) markTick(mt dispatch.MessageType, ts string) {
	if ts == "" {
		return
	}
	c.mu.Lock()
	c.lastTick[mt] = ts
	c.mu.Unlock()
}

// Stream payloads. Each message carries the complete current collection
// for its domain, never a diff.

type driverUpdates struct {
	Drivers   []model.Driver `json:"drivers"`
	Timestamp string         `json:"timestamp"`
}

type zoneUpdates struct {
	Zones     []model.Zone `json:"zones"`
	Timestamp string       `json:"timestamp"`
}

type requestUpdates struct {
	Requests  []model.RideRequest `json:"requests"`
	Timestamp string              `json:"timestamp"`
}

func (c *Client) onDriverUpdates(data json.RawMessage) {
	var p driverUpdates
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("smartzone: bad driver_updates payload: %v", err)
		return
	}
	c.drivers.ReplaceAll(p.Drivers)
	c.markTick(dispatch.MessageDriverUpdates, p.Timestamp)
}

func (c *Client) onZoneUpdates(data json.RawMessage) {
	var p zoneUpdates
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("smartzone: bad zone_updates payload: %v", err)
		return
	}
	c.zones.ReplaceAll(p.Zones)
	c.markTick(dispatch.MessageZoneUpdates, p.Timestamp)
}

func (c *Client) onRequestUpdates(data json.RawMessage) {
	var p requestUpdates
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("smartzone: bad request_updates payload: %v", err)
		return
	}
	c.requests.ReplaceAll(p.Requests)
	c.markTick(dispatch.MessageRequestUpdates, p.Timestamp)
}
