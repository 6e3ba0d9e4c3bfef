// Package service defines interfaces for external collaborators consumed by
// the engine.
package service

import (
	"context"
	"time"

	"geocue/internal/domain/entity"

	"github.com/google/uuid"
)

// MonitorBackend is the external proximity-monitoring backend. It owns all
// location sensing; the engine only keeps its watch-set in sync and consumes
// the raw events it raises.
type MonitorBackend interface {
	// RegisterRegion adds or replaces a watched region. Registration is keyed
	// by the region id, so re-registering the same id is idempotent (last
	// write wins). The dwell delay must be passed explicitly on every call.
	RegisterRegion(ctx context.Context, region *entity.Region, dwellDelay time.Duration) error

	// UnregisterRegion removes one region from the watch-set.
	UnregisterRegion(ctx context.Context, regionID uuid.UUID) error

	// UnregisterAll clears the backend's entire watch-set.
	UnregisterAll(ctx context.Context) error
}
