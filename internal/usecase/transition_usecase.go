package usecase

import (
	"context"

	"geocue/internal/domain/entity"
)

// TransitionUsecase consumes raw monitoring events and produces at most one
// confirmed transition per event, per the dwell-confirmation state machine.
type TransitionUsecase interface {
	// HandleEvent advances the per-region state machine with one raw event.
	// It never returns an error: malformed events, unknown regions, and
	// downstream failures are logged and swallowed so one bad event cannot
	// poison the stream.
	HandleEvent(ctx context.Context, event entity.RawEvent)
}
