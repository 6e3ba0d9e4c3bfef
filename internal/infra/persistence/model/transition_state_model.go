package model

import (
	"time"

	"github.com/google/uuid"
)

// RegionTransitionStateModel is the GORM-specific struct for the
// 'region_transition_states' table. One row per currently-occupied region;
// region_id is deliberately not a foreign key so state survives a concurrent
// region deletion without constraint failures.
type RegionTransitionStateModel struct {
	RegionID       uuid.UUID `gorm:"type:uuid;primary_key"`
	DwellConfirmed bool      `gorm:"not null;default:false"`
	LastEnterAt    time.Time
	LastExitAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (RegionTransitionStateModel) TableName() string {
	return "region_transition_states"
}
