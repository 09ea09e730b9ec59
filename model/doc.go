// Package model defines the SmartZone domain records as they travel on
// the wire: drivers, demand zones and ride requests, plus the shared
// GeoJSON point type. Payloads are replace-on-write blobs; the sync
// engine never merges fields between two versions of the same record.
package model
