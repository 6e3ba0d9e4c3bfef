// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "geocue/internal/delivery/context"
	"geocue/internal/domain/entity"
	domainerrors "geocue/internal/domain/errors"
	"geocue/internal/domain/repository"
	"geocue/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
)

// regionService implements the RegionUsecase interface.
type regionService struct {
	regionRepo repository.RegionRepository
	monitor    usecase.MonitorUsecase
	logger     *slog.Logger
}

// NewRegionService is the constructor for regionService.
func NewRegionService(
	regionRepo repository.RegionRepository,
	monitor usecase.MonitorUsecase,
	logger *slog.Logger,
) usecase.RegionUsecase {
	return &regionService{
		regionRepo: regionRepo,
		monitor:    monitor,
		logger:     logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *regionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddRegion creates a region and mirrors it into the monitoring watch-set.
func (srv *regionService) AddRegion(ctx context.Context, input *usecase.RegionInput) (*entity.Region, error) {
	if input.RadiusMeters <= 0 {
		return nil, domainerrors.ErrInvalidRadius
	}

	now := time.Now()
	region := &entity.Region{
		ID:            uuid.New(),
		Name:          input.Name,
		Address:       input.Address,
		Center:        orb.Point{input.Longitude, input.Latitude},
		RadiusMeters:  input.RadiusMeters,
		EntryMessage:  input.EntryMessage,
		ExitMessage:   input.ExitMessage,
		NotifyOnEntry: input.NotifyOnEntry,
		NotifyOnExit:  input.NotifyOnExit,
		Enabled:       input.Enabled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := srv.regionRepo.CreateRegion(ctx, region); err != nil {
		srv.log(ctx).Error("Failed to create region", slog.Any("error", err), slog.String("name", input.Name))

		return nil, errors.Wrap(domainerrors.ErrRegionCreationFailed, err.Error())
	}

	// The region is persisted either way; a monitoring gap is repaired by the
	// next reconcile pass.
	if err := srv.monitor.Register(ctx, region); err != nil {
		srv.log(ctx).Warn("Region created but not registered for monitoring",
			slog.Any("error", err), slog.Any("region_id", region.ID))
	}

	return region, nil
}

// UpdateRegion overwrites a region definition. The backend has no update
// primitive, so the watch entry is unregistered and conditionally re-registered.
func (srv *regionService) UpdateRegion(ctx context.Context, id uuid.UUID, input *usecase.RegionInput) (*entity.Region, error) {
	if input.RadiusMeters <= 0 {
		return nil, domainerrors.ErrInvalidRadius
	}

	existing, err := srv.regionRepo.FindRegionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRegionNotFound) {
			return nil, domainerrors.ErrRegionNotFound
		}

		return nil, errors.Wrap(err, "failed to fetch region")
	}

	region := &entity.Region{
		ID:            id,
		Name:          input.Name,
		Address:       input.Address,
		Center:        orb.Point{input.Longitude, input.Latitude},
		RadiusMeters:  input.RadiusMeters,
		EntryMessage:  input.EntryMessage,
		ExitMessage:   input.ExitMessage,
		NotifyOnEntry: input.NotifyOnEntry,
		NotifyOnExit:  input.NotifyOnExit,
		Enabled:       input.Enabled,
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     time.Now(),
	}

	if err := srv.regionRepo.UpdateRegion(ctx, region); err != nil {
		if errors.Is(err, repository.ErrRegionNotFound) {
			return nil, domainerrors.ErrRegionNotFound
		}
		srv.log(ctx).Error("Failed to update region", slog.Any("error", err), slog.Any("region_id", id))

		return nil, errors.Wrap(domainerrors.ErrRegionUpdateFailed, err.Error())
	}

	if err := srv.monitor.Unregister(ctx, id); err != nil {
		srv.log(ctx).Warn("Failed to unregister region during update",
			slog.Any("error", err), slog.Any("region_id", id))
	}
	if err := srv.monitor.Register(ctx, region); err != nil {
		srv.log(ctx).Warn("Region updated but not registered for monitoring",
			slog.Any("error", err), slog.Any("region_id", id))
	}

	return region, nil
}

// RemoveRegion deletes a region and unregisters it from the backend.
func (srv *regionService) RemoveRegion(ctx context.Context, id uuid.UUID) error {
	if err := srv.regionRepo.DeleteRegion(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRegionNotFound) {
			return domainerrors.ErrRegionNotFound
		}

		return errors.Wrap(err, "failed to delete region")
	}

	if err := srv.monitor.Unregister(ctx, id); err != nil {
		srv.log(ctx).Warn("Region deleted but still registered for monitoring",
			slog.Any("error", err), slog.Any("region_id", id))
	}

	return nil
}

// GetRegion retrieves one region by id.
func (srv *regionService) GetRegion(ctx context.Context, id uuid.UUID) (*entity.Region, error) {
	region, err := srv.regionRepo.FindRegionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRegionNotFound) {
			return nil, domainerrors.ErrRegionNotFound
		}

		return nil, errors.Wrap(err, "failed to fetch region")
	}

	return region, nil
}

// ListRegions retrieves every region definition.
func (srv *regionService) ListRegions(ctx context.Context) ([]*entity.Region, error) {
	regions, err := srv.regionRepo.ListRegions(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list regions")
	}

	return regions, nil
}

// RegionsContaining reports which regions' circular boundaries contain the
// given point, using great-circle distance. Diagnostic only.
func (srv *regionService) RegionsContaining(ctx context.Context, lat, lng float64) ([]*entity.Region, error) {
	regions, err := srv.regionRepo.ListRegions(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list regions")
	}

	point := orb.Point{lng, lat}
	matches := make([]*entity.Region, 0, len(regions))
	for _, region := range regions {
		if geo.Distance(region.Center, point) <= region.RadiusMeters {
			matches = append(matches, region)
		}
	}

	return matches, nil
}
