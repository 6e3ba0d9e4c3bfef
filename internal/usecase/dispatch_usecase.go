package usecase

import (
	"context"

	"geocue/internal/domain/entity"
)

// DispatchUsecase turns a confirmed transition into at most one delivered
// notification, applying the capability gate and the per-region throttle.
type DispatchUsecase interface {
	// Dispatch resolves the notification text for the transition, consumes a
	// throttle slot, presents the notification, and appends a history record.
	// Suppression (capability missing, notifications disabled for the
	// direction, throttled) is not an error.
	Dispatch(ctx context.Context, region *entity.Region, transition entity.TransitionType) error
}
