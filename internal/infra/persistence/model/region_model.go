// Package model contains the GORM-specific structs for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// RegionModel is the GORM-specific struct for the 'regions' table. It holds
// one reminder-region definition owned by the region registry.
type RegionModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	Name          string    `gorm:"type:text;not null"`
	Address       string    `gorm:"type:text"`
	Latitude      float64   `gorm:"type:decimal(10,8);not null"`
	Longitude     float64   `gorm:"type:decimal(11,8);not null"`
	RadiusMeters  float64   `gorm:"not null"`
	EntryMessage  string    `gorm:"type:text"`
	ExitMessage   string    `gorm:"type:text"`
	NotifyOnEntry bool      `gorm:"not null;default:true"`
	NotifyOnExit  bool      `gorm:"not null;default:true"`
	Enabled       bool      `gorm:"not null;default:true;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (RegionModel) TableName() string {
	return "regions"
}
