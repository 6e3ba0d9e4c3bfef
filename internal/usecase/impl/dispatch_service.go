package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "geocue/internal/delivery/context"
	"geocue/internal/domain/entity"
	"geocue/internal/domain/service"
	"geocue/internal/infra/throttle"
	"geocue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// dispatchService implements the DispatchUsecase interface.
type dispatchService struct {
	caps      service.CapabilityChecker
	throttle  *throttle.Throttle
	presenter service.Presenter
	history   usecase.HistoryUsecase
	logger    *slog.Logger
}

// NewDispatchService is the constructor for dispatchService.
func NewDispatchService(
	caps service.CapabilityChecker,
	throttle *throttle.Throttle,
	presenter service.Presenter,
	history usecase.HistoryUsecase,
	logger *slog.Logger,
) usecase.DispatchUsecase {
	return &dispatchService{
		caps:      caps,
		throttle:  throttle,
		presenter: presenter,
		history:   history,
		logger:    logger,
	}
}

func (srv *dispatchService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Dispatch produces at most one delivered notification for a confirmed
// transition. The throttle slot is consumed before presenting, so a failed
// present or history write never reopens the window: at-most-once on
// user-visible spam is valued over guaranteed history completeness.
func (srv *dispatchService) Dispatch(ctx context.Context, region *entity.Region, transition entity.TransitionType) error {
	// 1. Capability gate.
	if !srv.caps.HasNotificationAccess(ctx) {
		srv.log(ctx).Debug("Notification access not granted, skipping dispatch",
			slog.Any("region_id", region.ID))

		return nil
	}

	// 2. Per-direction opt-out.
	switch transition {
	case entity.TransitionEntry:
		if !region.NotifyOnEntry {
			return nil
		}
	case entity.TransitionExit:
		if !region.NotifyOnExit {
			return nil
		}
	default:
		return errors.Errorf("unknown transition type: %s", transition)
	}

	title, message := resolveNotificationText(region, transition)

	// 3. Throttle, consumed up front.
	if !srv.throttle.Allow(region.ID, transition) {
		srv.log(ctx).Debug("Dispatch throttled",
			slog.Any("region_id", region.ID), slog.String("transition", string(transition)))

		return nil
	}

	// 4. Present.
	deepLink := fmt.Sprintf("geocue://notifications/%s", region.ID)
	if err := srv.presenter.Present(ctx, title, message, deepLink); err != nil {
		return errors.Wrap(err, "failed to present notification")
	}

	// 5. Record.
	record := &entity.NotificationRecord{
		ID:           uuid.New(),
		RegionID:     region.ID,
		RegionName:   region.Name,
		Title:        title,
		Message:      message,
		Type:         transition,
		DispatchedAt: time.Now(),
	}
	if err := srv.history.Append(ctx, record); err != nil {
		return errors.Wrap(err, "failed to append history record")
	}

	return nil
}

// resolveNotificationText picks the region's override message when set,
// otherwise the templated default.
func resolveNotificationText(region *entity.Region, transition entity.TransitionType) (title, message string) {
	if transition == entity.TransitionEntry {
		title = fmt.Sprintf("Arrived at %s", region.Name)
		message = region.EntryMessage
		if message == "" {
			message = fmt.Sprintf("You arrived at %s", region.Name)
		}

		return title, message
	}

	title = fmt.Sprintf("Left %s", region.Name)
	message = region.ExitMessage
	if message == "" {
		message = fmt.Sprintf("You left %s", region.Name)
	}

	return title, message
}
