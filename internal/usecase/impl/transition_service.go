package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "geocue/internal/delivery/context"
	"geocue/internal/domain/entity"
	"geocue/internal/domain/repository"
	"geocue/internal/usecase"
	"geocue/internal/util"

	"github.com/pkg/errors"
)

// transitionService implements the TransitionUsecase interface. It is the
// dwell-confirmation state machine: a region's occupancy record is created on
// ENTER, confirmed on DWELL, and deleted on EXIT; only the confirmed path
// emits user-visible transitions, which filters out drive-bys.
type transitionService struct {
	stateRepo  repository.TransitionStateRepository
	regionRepo repository.RegionRepository
	dispatcher usecase.DispatchUsecase
	locks      *util.KeyMutex
	logger     *slog.Logger
}

// NewTransitionService is the constructor for transitionService.
func NewTransitionService(
	stateRepo repository.TransitionStateRepository,
	regionRepo repository.RegionRepository,
	dispatcher usecase.DispatchUsecase,
	locks *util.KeyMutex,
	logger *slog.Logger,
) usecase.TransitionUsecase {
	return &transitionService{
		stateRepo:  stateRepo,
		regionRepo: regionRepo,
		dispatcher: dispatcher,
		locks:      locks,
		logger:     logger,
	}
}

func (srv *transitionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// HandleEvent advances the per-region state machine with one raw event. It
// never returns an error: one bad event must not abort processing of
// concurrently-arriving events for other regions, so every failure here is
// logged and the event dropped.
func (srv *transitionService) HandleEvent(ctx context.Context, event entity.RawEvent) {
	if !event.Type.Valid() {
		srv.log(ctx).Warn("Dropping raw event with unknown type",
			slog.String("event_type", string(event.Type)), slog.Any("region_id", event.RegionID))

		return
	}

	region, err := srv.regionRepo.FindRegionByID(ctx, event.RegionID)
	if err != nil {
		if errors.Is(err, repository.ErrRegionNotFound) {
			// Deletion racing with an in-flight event is expected, not an error.
			srv.log(ctx).Debug("Dropping raw event for unknown region", slog.Any("region_id", event.RegionID))
		} else {
			srv.log(ctx).Error("Failed to look up region for raw event",
				slog.Any("error", err), slog.Any("region_id", event.RegionID))
		}

		return
	}

	if !region.Enabled {
		srv.log(ctx).Debug("Dropping raw event for disabled region", slog.Any("region_id", event.RegionID))

		return
	}

	transition, emit := srv.apply(ctx, event)
	if !emit {
		return
	}

	// Dispatch runs outside the per-region lock; the presenter and the
	// history write may block.
	if err := srv.dispatcher.Dispatch(ctx, region, transition); err != nil {
		srv.log(ctx).Error("Failed to dispatch transition",
			slog.Any("error", err), slog.Any("region_id", region.ID), slog.String("transition", string(transition)))
	}
}

// apply performs the state read-modify-write for one event under the region's
// lock and reports whether a transition should be emitted. The lock scope
// excludes dispatch so no lock is held across a blocking collaborator call.
func (srv *transitionService) apply(ctx context.Context, event entity.RawEvent) (entity.TransitionType, bool) {
	unlock := srv.locks.Lock(event.RegionID.String())
	defer unlock()

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	switch event.Type {
	case entity.RawEnter:
		state, err := srv.stateRepo.FindState(ctx, event.RegionID)
		if err != nil {
			if !errors.Is(err, repository.ErrTransitionStateNotFound) {
				srv.log(ctx).Error("Failed to read transition state",
					slog.Any("error", err), slog.Any("region_id", event.RegionID))

				return "", false
			}
			state = &entity.RegionTransitionState{RegionID: event.RegionID}
		}

		// Redelivered ENTER overwrites the timestamp only; dwell
		// confirmation is preserved.
		state.LastEnterAt = occurredAt
		if err := srv.stateRepo.UpsertState(ctx, state); err != nil {
			srv.log(ctx).Error("Failed to store transition state",
				slog.Any("error", err), slog.Any("region_id", event.RegionID))
		}

		return "", false

	case entity.RawDwell:
		confirmed, err := srv.stateRepo.ConfirmDwell(ctx, event.RegionID)
		if err != nil {
			srv.log(ctx).Error("Failed to confirm dwell",
				slog.Any("error", err), slog.Any("region_id", event.RegionID))

			return "", false
		}
		// Not confirmed means either no occupancy record (DWELL while
		// outside) or an already-confirmed one (redelivery); both are no-ops.
		if !confirmed {
			return "", false
		}

		return entity.TransitionEntry, true

	case entity.RawExit:
		state, err := srv.stateRepo.FindState(ctx, event.RegionID)
		if err != nil {
			if !errors.Is(err, repository.ErrTransitionStateNotFound) {
				srv.log(ctx).Error("Failed to read transition state",
					slog.Any("error", err), slog.Any("region_id", event.RegionID))
			}

			return "", false
		}

		if err := srv.stateRepo.DeleteState(ctx, event.RegionID); err != nil {
			srv.log(ctx).Error("Failed to delete transition state",
				slog.Any("error", err), slog.Any("region_id", event.RegionID))

			return "", false
		}

		// An EXIT without a prior DWELL is a drive-by, silently discarded.
		if !state.DwellConfirmed {
			return "", false
		}

		return entity.TransitionExit, true
	}

	return "", false
}
