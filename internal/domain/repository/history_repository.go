package repository

import (
	"context"
	"time"

	"geocue/internal/domain/entity"

	"github.com/google/uuid"
)

// HistoryRepository defines the interface for the append-only notification
// ledger.
type HistoryRepository interface {
	// InsertRecord appends a dispatched-notification record. Pure insert, no
	// dedup.
	InsertRecord(ctx context.Context, record *entity.NotificationRecord) error

	// FindRecordsSince retrieves all records dispatched at or after the cutoff,
	// ordered newest first.
	FindRecordsSince(ctx context.Context, cutoff time.Time) ([]*entity.NotificationRecord, error)

	// FindRecordsForRegion retrieves all records for one region, ordered
	// newest first.
	FindRecordsForRegion(ctx context.Context, regionID uuid.UUID) ([]*entity.NotificationRecord, error)

	// DeleteRecordsBefore removes every record dispatched before the cutoff.
	DeleteRecordsBefore(ctx context.Context, cutoff time.Time) error

	// DeleteAllRecords removes every record unconditionally.
	DeleteAllRecords(ctx context.Context) error
}
