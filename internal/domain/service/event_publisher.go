package service

import (
	"context"

	"geocue/internal/domain/entity"
)

// EventPublisher injects raw boundary-crossing events into the event
// pipeline. In production the monitoring backend is the only event producer;
// this port exists for simulation, so a region's full transition flow can be
// exercised without physically moving through its boundary.
type EventPublisher interface {
	// PublishRawEvent delivers one raw event to the worker.
	PublishRawEvent(ctx context.Context, event *entity.RawEvent) error

	// Close releases publisher resources.
	Close() error
}
