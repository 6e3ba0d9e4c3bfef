package usecase

import (
	"context"

	"geocue/internal/domain/entity"

	"github.com/google/uuid"
)

// HistoryUsecase exposes the rolling notification ledger.
type HistoryUsecase interface {
	// Append stores one record and opportunistically purges entries older
	// than the retention window.
	Append(ctx context.Context, record *entity.NotificationRecord) error

	// Recent returns records inside the retention window, newest first.
	Recent(ctx context.Context) ([]*entity.NotificationRecord, error)

	// RecentForRegion returns in-window records for one region, newest first.
	RecentForRegion(ctx context.Context, regionID uuid.UUID) ([]*entity.NotificationRecord, error)

	// Clear removes every record regardless of age.
	Clear(ctx context.Context) error

	// Watch registers a subscriber that receives each record as it is
	// appended. The returned cancel func removes the subscription; the
	// channel is closed on cancel.
	Watch(ctx context.Context) (<-chan entity.NotificationRecord, func())
}
