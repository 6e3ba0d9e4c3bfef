package entity

import (
	"time"

	"github.com/google/uuid"
)

// RawEventType is the unfiltered boundary-crossing signal raised by the
// monitoring backend. It is not yet a confirmed arrival or departure.
type RawEventType string

const (
	RawEnter RawEventType = "ENTER"
	RawDwell RawEventType = "DWELL"
	RawExit  RawEventType = "EXIT"
)

// Valid reports whether the event type is one the engine understands.
func (t RawEventType) Valid() bool {
	switch t {
	case RawEnter, RawDwell, RawExit:
		return true
	}

	return false
}

// RawEvent is a single boundary-crossing delivery from the monitoring
// backend. The backend may redeliver any event at least once and may deliver
// events for the same region concurrently.
type RawEvent struct {
	RequestID  string       `json:"request_id,omitempty"` // For distributed tracing.
	RegionID   uuid.UUID    `json:"region_id"`
	Type       RawEventType `json:"event_type"`
	OccurredAt time.Time    `json:"occurred_at"` // Backend-supplied timestamp, advisory only.
}

// TransitionType is a user-visible classification produced by the state
// machine once a raw event sequence is confirmed as a real arrival or
// departure.
type TransitionType string

const (
	TransitionEntry TransitionType = "ENTRY"
	TransitionExit  TransitionType = "EXIT"
)

// RegionTransitionState tracks the occupancy of one region between process
// restarts. Its existence means a raw ENTER has been seen and no EXIT yet;
// its absence means the region is considered unoccupied. DwellConfirmed is
// only meaningful while the record exists.
type RegionTransitionState struct {
	RegionID       uuid.UUID `json:"region_id"`
	DwellConfirmed bool      `json:"dwell_confirmed"` // True once a DWELL raw event has been seen for the current occupancy.
	LastEnterAt    time.Time `json:"last_enter_at"`   // Diagnostic only, never used for classification.
	LastExitAt     time.Time `json:"last_exit_at"`    // Diagnostic only, never used for classification.
}
