package model

// Entity is the identity contract every domain record satisfies. The key
// is stable and unique within its domain and is the sole handle used for
// upsert and remove.
type Entity interface {
	Key() string
}

// GeoPoint is a GeoJSON Point with [longitude, latitude] coordinates.
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Lon returns the longitude, or 0 if the point is malformed.
func (p GeoPoint) Lon() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

// Lat returns the latitude, or 0 if the point is malformed.
func (p GeoPoint) Lat() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// DriverStatus values as sent by the service.
const (
	DriverOffline   = "offline"
	DriverAvailable = "available"
	DriverBusy      = "busy"
)

// Driver is a vehicle position record.
type Driver struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	VehicleType string   `json:"vehicle_type,omitempty"`
	Location    GeoPoint `json:"location"`
	Heading     float64  `json:"heading"`
	Speed       float64  `json:"speed,omitempty"`
	Status      string   `json:"status"`
	CurrentZone string   `json:"current_zone,omitempty"`
	LastUpdated string   `json:"last_updated,omitempty"`
}

func (d Driver) Key() string { return d.ID }

// Zone is a geographical demand zone (an H3 cell).
type Zone struct {
	ZoneID          string      `json:"zone_id"`
	Center          GeoPoint    `json:"center"`
	Boundary        [][]float64 `json:"boundary,omitempty"`
	DemandLevel     int         `json:"demand_level"`
	IsSurge         bool        `json:"is_surge"`
	CurrentRequests int         `json:"current_requests"`
	AverageWaitTime float64     `json:"average_wait_time,omitempty"`
	DriversCount    int         `json:"drivers_count"`
}

func (z Zone) Key() string { return z.ZoneID }

// RideRequestStatus values as sent by the service.
const (
	RequestPending    = "pending"
	RequestAccepted   = "accepted"
	RequestInProgress = "in_progress"
	RequestCompleted  = "completed"
	RequestCancelled  = "cancelled"
)

// ActiveRequestStatuses is the set of statuses the dashboard tracks.
// Terminal requests stay in the store until the next full-set tick drops
// them; hiding them is the projection layer's job.
var ActiveRequestStatuses = []string{RequestPending, RequestAccepted, RequestInProgress}

// RideRequest is a pickup/dropoff request record.
type RideRequest struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id,omitempty"`
	PickupLocation  GeoPoint `json:"pickup_location"`
	DropoffLocation GeoPoint `json:"dropoff_location"`
	PickupZone      string   `json:"pickup_zone,omitempty"`
	DropoffZone     string   `json:"dropoff_zone,omitempty"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"created_at"`
	DriverID        string   `json:"driver_id,omitempty"`
	EstimatedFare   float64  `json:"estimated_fare,omitempty"`
}

func (r RideRequest) Key() string { return r.ID }
