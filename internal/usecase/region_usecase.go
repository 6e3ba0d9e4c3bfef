// Package usecase defines the application use-case interfaces.
package usecase

import (
	"context"

	"geocue/internal/domain/entity"

	"github.com/google/uuid"
)

// RegionInput carries the user-editable fields of a region definition.
type RegionInput struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	RadiusMeters  float64 `json:"radius_meters"`
	EntryMessage  string  `json:"entry_message"`
	ExitMessage   string  `json:"exit_message"`
	NotifyOnEntry bool    `json:"notify_on_entry"`
	NotifyOnExit  bool    `json:"notify_on_exit"`
	Enabled       bool    `json:"enabled"`
}

// RegionUsecase is the region registry: CRUD over region definitions, with
// every mutation mirrored into the monitoring backend's watch-set.
type RegionUsecase interface {
	// AddRegion creates a region and, when it is enabled and background
	// location access is held, registers it with the monitoring backend.
	AddRegion(ctx context.Context, input *RegionInput) (*entity.Region, error)

	// UpdateRegion overwrites a region definition. The backend has no update
	// primitive, so the watch entry is unregistered and conditionally
	// re-registered.
	UpdateRegion(ctx context.Context, id uuid.UUID, input *RegionInput) (*entity.Region, error)

	// RemoveRegion deletes a region and unregisters it from the backend.
	RemoveRegion(ctx context.Context, id uuid.UUID) error

	// GetRegion retrieves one region by id.
	GetRegion(ctx context.Context, id uuid.UUID) (*entity.Region, error)

	// ListRegions retrieves every region definition.
	ListRegions(ctx context.Context) ([]*entity.Region, error)

	// RegionsContaining reports which regions' circular boundaries contain
	// the given point. Diagnostic only.
	RegionsContaining(ctx context.Context, lat, lng float64) ([]*entity.Region, error)
}
