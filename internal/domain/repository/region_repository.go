// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"geocue/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRegionNotFound is returned when a region is not found.
var ErrRegionNotFound = errors.New("region not found")

// RegionRepository defines the interface for region-registry database
// operations.
type RegionRepository interface {
	// CreateRegion persists a new region definition.
	CreateRegion(ctx context.Context, region *entity.Region) error

	// UpdateRegion overwrites an existing region definition.
	UpdateRegion(ctx context.Context, region *entity.Region) error

	// DeleteRegion removes a region definition by id.
	DeleteRegion(ctx context.Context, id uuid.UUID) error

	// FindRegionByID retrieves a region by its unique ID.
	FindRegionByID(ctx context.Context, id uuid.UUID) (*entity.Region, error)

	// ListRegions retrieves every region definition, newest first.
	ListRegions(ctx context.Context) ([]*entity.Region, error)
}
