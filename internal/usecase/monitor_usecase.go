package usecase

import (
	"context"

	"geocue/internal/domain/entity"

	"github.com/google/uuid"
)

// MonitorUsecase keeps the monitoring backend's watch-set equal to the set of
// enabled regions.
type MonitorUsecase interface {
	// Reconcile recomputes the desired watch-set from a full registry
	// snapshot and re-applies it: the backend's entire current watch-set is
	// unregistered unconditionally, then each enabled region is re-registered
	// one at a time, but only if background location access is held. Without
	// the capability the watch-set is left empty.
	Reconcile(ctx context.Context) error

	// Register adds one region to the watch-set if it is enabled and
	// background location access is held.
	Register(ctx context.Context, region *entity.Region) error

	// Unregister removes one region from the watch-set.
	Unregister(ctx context.Context, regionID uuid.UUID) error
}
