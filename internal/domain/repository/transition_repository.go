package repository

import (
	"context"
	"errors"

	"geocue/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTransitionStateNotFound is returned when no transition state exists for
// a region.
var ErrTransitionStateNotFound = errors.New("transition state not found")

// TransitionStateRepository defines the interface for the per-region
// transition-state store. Callers serialize access per region id; the store
// additionally conditions its updates so that concurrent redeliveries cannot
// leave a half-applied record.
type TransitionStateRepository interface {
	// FindState retrieves the transition state for a region, or
	// ErrTransitionStateNotFound if the region is considered unoccupied.
	FindState(ctx context.Context, regionID uuid.UUID) (*entity.RegionTransitionState, error)

	// UpsertState creates or overwrites the transition state for a region.
	UpsertState(ctx context.Context, state *entity.RegionTransitionState) error

	// ConfirmDwell flips DwellConfirmed to true for the region's current
	// occupancy. It reports whether the flip happened: false means there was
	// no record or the record was already confirmed, discriminating the
	// INSIDE_PENDING edge from redeliveries.
	ConfirmDwell(ctx context.Context, regionID uuid.UUID) (bool, error)

	// DeleteState removes the transition state for a region. Deleting a
	// missing state is not an error.
	DeleteState(ctx context.Context, regionID uuid.UUID) error
}
