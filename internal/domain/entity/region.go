// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Region represents a named geographic area the user wants to be reminded
// about. It is the unit registered with the monitoring backend and referenced
// by id from every other component.
type Region struct {
	ID            uuid.UUID `json:"id"`             // The Global Unique Identifier (GUID) for the region, immutable after creation.
	Name          string    `json:"name"`           // Display name, e.g. "Office".
	Address       string    `json:"address"`        // Human-readable address for display.
	Center        orb.Point `json:"center"`         // Geographic center as (lon, lat).
	RadiusMeters  float64   `json:"radius_meters"`  // Circular boundary radius in meters.
	EntryMessage  string    `json:"entry_message"`  // Optional override text for arrival notifications; empty means templated default.
	ExitMessage   string    `json:"exit_message"`   // Optional override text for departure notifications; empty means templated default.
	NotifyOnEntry bool      `json:"notify_on_entry"` // Whether confirmed arrivals produce a notification.
	NotifyOnExit  bool      `json:"notify_on_exit"`  // Whether confirmed departures produce a notification.
	Enabled       bool      `json:"enabled"`        // Whether this region should currently be monitored.
	CreatedAt     time.Time `json:"created_at"`     // Timestamp of when this region was created.
	UpdatedAt     time.Time `json:"updated_at"`     // Timestamp of the last modification.
}

// Latitude returns the latitude component of the region center.
func (r *Region) Latitude() float64 {
	return r.Center.Lat()
}

// Longitude returns the longitude component of the region center.
func (r *Region) Longitude() float64 {
	return r.Center.Lon()
}
