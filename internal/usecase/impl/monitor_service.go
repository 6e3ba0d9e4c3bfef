package impl

import (
	"context"
	"log/slog"

	deliverycontext "geocue/internal/delivery/context"
	"geocue/internal/domain/constants"
	"geocue/internal/domain/entity"
	"geocue/internal/domain/repository"
	"geocue/internal/domain/service"
	"geocue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// monitorService implements the MonitorUsecase interface.
type monitorService struct {
	regionRepo repository.RegionRepository
	backend    service.MonitorBackend
	caps       service.CapabilityChecker
	logger     *slog.Logger
}

// NewMonitorService is the constructor for monitorService.
func NewMonitorService(
	regionRepo repository.RegionRepository,
	backend service.MonitorBackend,
	caps service.CapabilityChecker,
	logger *slog.Logger,
) usecase.MonitorUsecase {
	return &monitorService{
		regionRepo: regionRepo,
		backend:    backend,
		caps:       caps,
		logger:     logger,
	}
}

func (srv *monitorService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Reconcile recomputes the desired watch-set from a full registry snapshot and
// re-applies it. The desired set is never diffed against the current one: the
// entire watch-set is cleared first, so a region flipped enabled→disabled is
// dropped without an explicit remove.
func (srv *monitorService) Reconcile(ctx context.Context) error {
	regions, err := srv.regionRepo.ListRegions(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to snapshot regions for reconcile")
	}

	if err := srv.backend.UnregisterAll(ctx); err != nil {
		return errors.Wrap(err, "failed to clear monitoring watch-set")
	}

	if !srv.caps.HasBackgroundLocationAccess(ctx) {
		// Fail safe: better to monitor nothing than to attempt and fail a
		// permission-gated call.
		srv.log(ctx).Info("Background location access not granted, leaving watch-set empty")

		return nil
	}

	registered := 0
	for _, region := range regions {
		if !region.Enabled {
			continue
		}

		if err := srv.backend.RegisterRegion(ctx, region, constants.DwellDelay); err != nil {
			// A failure here leaves this region unmonitored until the next
			// reconcile pass.
			srv.log(ctx).Warn("Failed to register region during reconcile",
				slog.Any("error", err), slog.Any("region_id", region.ID), slog.String("name", region.Name))

			continue
		}
		registered++
	}

	srv.log(ctx).Info("Monitoring reconcile complete",
		slog.Int("regions", len(regions)), slog.Int("registered", registered))

	return nil
}

// Register adds one region to the watch-set if it is enabled and background
// location access is held.
func (srv *monitorService) Register(ctx context.Context, region *entity.Region) error {
	if !region.Enabled {
		return nil
	}

	if !srv.caps.HasBackgroundLocationAccess(ctx) {
		srv.log(ctx).Debug("Skipping registration, background location access not granted",
			slog.Any("region_id", region.ID))

		return nil
	}

	if err := srv.backend.RegisterRegion(ctx, region, constants.DwellDelay); err != nil {
		return errors.Wrap(err, "failed to register region")
	}

	return nil
}

// Unregister removes one region from the watch-set.
func (srv *monitorService) Unregister(ctx context.Context, regionID uuid.UUID) error {
	if err := srv.backend.UnregisterRegion(ctx, regionID); err != nil {
		return errors.Wrap(err, "failed to unregister region")
	}

	return nil
}
