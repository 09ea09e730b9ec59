package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/encryptedtouhid/SmartZone/model"
)

// Loader is an HTTP client for the SmartZone collection endpoints.
type Loader struct {
	baseURL    string
	httpClient *http.Client
}

// NewLoader creates a loader for the given service origin.
func NewLoader(baseURL string, timeout time.Duration) *Loader {
	return &Loader{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Bounds is a bounding-box filter for collection queries.
type Bounds struct {
	North float64
	South float64
	East  float64
	West  float64
}

func (b Bounds) query() url.Values {
	v := url.Values{}
	v.Set("north", strconv.FormatFloat(b.North, 'f', -1, 64))
	v.Set("south", strconv.FormatFloat(b.South, 'f', -1, 64))
	v.Set("east", strconv.FormatFloat(b.East, 'f', -1, 64))
	v.Set("west", strconv.FormatFloat(b.West, 'f', -1, 64))
	return v
}

// Drivers fetches the full driver collection.
func (l *Loader) Drivers(ctx context.Context) ([]model.Driver, error) {
	var out []model.Driver
	err := l.getJSON(ctx, "/api/drivers", nil, &out)
	return out, err
}

// DriversByStatus fetches drivers filtered by status.
func (l *Loader) DriversByStatus(ctx context.Context, status string) ([]model.Driver, error) {
	v := url.Values{}
	v.Set("status", status)
	var out []model.Driver
	err := l.getJSON(ctx, "/api/drivers", v, &out)
	return out, err
}

// Zones fetches the full zone collection.
func (l *Loader) Zones(ctx context.Context) ([]model.Zone, error) {
	var out []model.Zone
	err := l.getJSON(ctx, "/api/zones", nil, &out)
	return out, err
}

// DriversInBounds fetches drivers within a bounding box.
func (l *Loader) DriversInBounds(ctx context.Context, b Bounds) ([]model.Driver, error) {
	var out []model.Driver
	err := l.getJSON(ctx, "/api/geospatial/drivers-in-bounds", b.query(), &out)
	return out, err
}

// Requests fetches the full ride request collection.
func (l *Loader) Requests(ctx context.Context) ([]model.RideRequest, error) {
	var out []model.RideRequest
	err := l.getJSON(ctx, "/api/ride-requests", nil, &out)
	return out, err
}

// RequestsByStatus fetches ride requests filtered by status.
func (l *Loader) RequestsByStatus(ctx context.Context, status string) ([]model.RideRequest, error) {
	v := url.Values{}
	v.Set("status", status)
	var out []model.RideRequest
	err := l.getJSON(ctx, "/api/ride-requests", v, &out)
	return out, err
}

// RequestsInBounds fetches ride requests whose pickup falls within a
// bounding box. The service additionally limits these to the last hour.
func (l *Loader) RequestsInBounds(ctx context.Context, b Bounds) ([]model.RideRequest, error) {
	var out []model.RideRequest
	err := l.getJSON(ctx, "/api/geospatial/requests-in-bounds", b.query(), &out)
	return out, err
}

// Driver fetches a single driver by id.
func (l *Loader) Driver(ctx context.Context, id string) (model.Driver, error) {
	var out model.Driver
	err := l.getJSON(ctx, "/api/drivers/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Zone fetches a single zone by id.
func (l *Loader) Zone(ctx context.Context, id string) (model.Zone, error) {
	var out model.Zone
	err := l.getJSON(ctx, "/api/zones/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Request fetches a single ride request by id.
func (l *Loader) Request(ctx context.Context, id string) (model.RideRequest, error) {
	var out model.RideRequest
	err := l.getJSON(ctx, "/api/ride-requests/"+url.PathEscape(id), nil, &out)
	return out, err
}

// ProvisionParams seeds the zone grid around a city center.
type ProvisionParams struct {
	CenterLat  float64
	CenterLon  float64
	RadiusKM   float64
	Resolution int
}

// InitializeZones provisions the zone collection. Called once when the
// service reports no zones before simulation start.
func (l *Loader) InitializeZones(ctx context.Context, p ProvisionParams) error {
	v := url.Values{}
	v.Set("center_lat", strconv.FormatFloat(p.CenterLat, 'f', -1, 64))
	v.Set("center_lon", strconv.FormatFloat(p.CenterLon, 'f', -1, 64))
	v.Set("radius_km", strconv.FormatFloat(p.RadiusKM, 'f', -1, 64))
	if p.Resolution > 0 {
		v.Set("resolution", strconv.Itoa(p.Resolution))
	}
	return l.post(ctx, "/api/initialize-zones", v)
}

// StartSimulation starts the upstream simulation. Fire-and-forget: a 2xx
// status is the only success signal, the body is not parsed.
func (l *Loader) StartSimulation(ctx context.Context) error {
	return l.post(ctx, "/api/simulation/start", nil)
}

// StopSimulation stops the upstream simulation.
func (l *Loader) StopSimulation(ctx context.Context) error {
	return l.post(ctx, "/api/simulation/stop", nil)
}

func (l *Loader) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := l.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, u)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (l *Loader) post(ctx context.Context, path string, query url.Values) error {
	u := l.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return err
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post %s: %w", u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, u)
	}
	return nil
}
