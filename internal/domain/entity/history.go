package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationRecord is one entry in the append-only ledger of dispatched
// notifications. RegionName is a snapshot taken at dispatch time so the
// record survives region deletion or rename.
type NotificationRecord struct {
	ID           uuid.UUID      `json:"id"`
	RegionID     uuid.UUID      `json:"region_id"`
	RegionName   string         `json:"region_name"`
	Title        string         `json:"title"`
	Message      string         `json:"message"`
	Type         TransitionType `json:"type"` // ENTRY or EXIT.
	DispatchedAt time.Time      `json:"dispatched_at"`
}
