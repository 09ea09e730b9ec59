package projection

import (
	"sort"
	"time"

	"github.com/encryptedtouhid/SmartZone/model"
)

// TopNBy sorts entries descending by the metric and returns the first n.
// The input slice is not modified.
func TopNBy[T any](entries []T, n int, metric func(T) float64) []T {
	if n < 0 {
		n = 0
	}
	out := make([]T, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return metric(out[i]) > metric(out[j])
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ByStatusPriority places entries whose status is the priority value
// before all others; within each partition the original order holds.
func ByStatusPriority[T any](entries []T, isPriority func(T) bool) []T {
	out := make([]T, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return isPriority(out[i]) && !isPriority(out[j])
	})
	return out
}

// FilterActive retains entries whose status is in the allowed set,
// preserving relative order.
func FilterActive[T any](entries []T, status func(T) string, allowed []string) []T {
	set := make(map[string]struct{}, len(allowed))
	for _, s := range allowed {
		set[s] = struct{}{}
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if _, ok := set[status(e)]; ok {
			out = append(out, e)
		}
	}
	return out
}

// RecentN sorts entries descending by timestamp and returns the first n.
// Entries whose timestamp does not parse sort last, keeping their
// original relative order.
func RecentN[T any](entries []T, n int, timestamp func(T) string) []T {
	if n < 0 {
		n = 0
	}
	out := make([]T, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		ti, oki := parseTime(timestamp(out[i]))
		tj, okj := parseTime(timestamp(out[j]))
		if oki != okj {
			return oki
		}
		return ti.After(tj)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TopZonesByDemand is the dashboard's demand heat list.
func TopZonesByDemand(zones []model.Zone, n int) []model.Zone {
	return TopNBy(zones, n, func(z model.Zone) float64 { return float64(z.DemandLevel) })
}

// SurgeZones retains only zones currently flagged for surge.
func SurgeZones(zones []model.Zone) []model.Zone {
	out := make([]model.Zone, 0, len(zones))
	for _, z := range zones {
		if z.IsSurge {
			out = append(out, z)
		}
	}
	return out
}

// ActiveRequests drops requests that reached a terminal status. The
// store keeps whatever the service last sent; hiding completed and
// cancelled rides is this projection's job.
func ActiveRequests(requests []model.RideRequest) []model.RideRequest {
	return FilterActive(requests, func(r model.RideRequest) string { return r.Status }, model.ActiveRequestStatuses)
}

// PendingFirst orders requests with pending ones ahead of the rest.
func PendingFirst(requests []model.RideRequest) []model.RideRequest {
	return ByStatusPriority(requests, func(r model.RideRequest) bool { return r.Status == model.RequestPending })
}

// RecentRequests returns the n most recently created requests.
func RecentRequests(requests []model.RideRequest, n int) []model.RideRequest {
	return RecentN(requests, n, func(r model.RideRequest) string { return r.CreatedAt })
}

// AvailableDrivers retains drivers that can take a ride.
func AvailableDrivers(drivers []model.Driver) []model.Driver {
	return FilterActive(drivers, func(d model.Driver) string { return d.Status }, []string{model.DriverAvailable})
}
