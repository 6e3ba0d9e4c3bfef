package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationHistoryModel is the GORM-specific struct for the
// 'notification_history' table. Append-only; region_name is a snapshot taken
// at dispatch time.
type NotificationHistoryModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	RegionID     uuid.UUID `gorm:"type:uuid;not null;index"`
	RegionName   string    `gorm:"type:text;not null"`
	Title        string    `gorm:"type:text;not null"`
	Message      string    `gorm:"type:text;not null"`
	Type         string    `gorm:"type:text;not null"`
	DispatchedAt time.Time `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (NotificationHistoryModel) TableName() string {
	return "notification_history"
}
