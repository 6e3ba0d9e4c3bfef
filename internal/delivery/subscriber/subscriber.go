// Package subscriber provides a Google Pub/Sub pull subscriber that feeds
// raw boundary-crossing events into the transition engine. It is a second
// event source next to the worker's push endpoint, for deployments where a
// push URL is impractical.
package subscriber

import (
	"context"
	"encoding/json"
	"log/slog"

	"geocue/config"
	"geocue/internal/delivery"
	deliverycontext "geocue/internal/delivery/context"
	"geocue/internal/domain/constants"
	"geocue/internal/domain/entity"
	"geocue/internal/usecase"

	"cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SubscriberParams holds dependencies for the pull subscriber, injected by Fx.
type SubscriberParams struct {
	fx.In

	Lc          fx.Lifecycle
	Ctx         context.Context
	Config      *config.Config
	Logger      *slog.Logger
	Transitions usecase.TransitionUsecase
}

type pullSubscriber struct {
	client      *pubsub.Client
	subID       string
	logger      *slog.Logger
	transitions usecase.TransitionUsecase
}

// noopSubscriber is used when no pull subscription is configured; it blocks
// until shutdown so the delivery group stays uniform.
type noopSubscriber struct{}

func (s *noopSubscriber) Serve(ctx context.Context) error {
	<-ctx.Done()

	return nil
}

// NewSubscriber creates the pull subscriber delivery based on configuration.
func NewSubscriber(params SubscriberParams) (delivery.Delivery, error) {
	cfg := params.Config.EventSource
	if cfg == nil || cfg.Provider != constants.EventSourceProviderGoogle || cfg.SubscriptionID == "" {
		params.Logger.Info("Pull subscription not configured, push endpoint is the only event source")

		return &noopSubscriber{}, nil
	}

	if cfg.ProjectID == "" {
		return nil, errors.New("project ID is required for google event source")
	}

	client, err := pubsub.NewClient(params.Ctx, cfg.ProjectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing Pub/Sub subscriber client")

			return errors.WithStack(client.Close())
		},
	})

	params.Logger.Info("Google Pub/Sub pull subscriber initialized",
		slog.String("project_id", cfg.ProjectID),
		slog.String("subscription_id", cfg.SubscriptionID),
	)

	return &pullSubscriber{
		client:      client,
		subID:       cfg.SubscriptionID,
		logger:      params.Logger,
		transitions: params.Transitions,
	}, nil
}

// Serve runs the Receive loop until the context is cancelled. Pub/Sub
// dispatches callbacks concurrently; per-region exclusion lives in the state
// layer, so no coordination is needed here.
func (s *pullSubscriber) Serve(ctx context.Context) error {
	subscriber := s.client.Subscriber(s.subID)

	err := subscriber.Receive(ctx, func(msgCtx context.Context, msg *pubsub.Message) {
		s.handleMessage(msgCtx, msg)
		// Always ack: the engine never requests redelivery, and malformed
		// payloads would just fail again.
		msg.Ack()
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "pull subscription receive failed")
	}

	return nil
}

func (s *pullSubscriber) handleMessage(ctx context.Context, msg *pubsub.Message) {
	var event entity.RawEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		s.logger.Error("[Subscriber] Failed to parse raw event",
			slog.Any("error", err), slog.String("message_id", msg.ID))

		return
	}

	requestID := msg.Attributes["request_id"]
	if requestID == "" {
		requestID = event.RequestID
	}
	if requestID == "" {
		requestID = uuid.New().String()
	}

	reqLogger := s.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Subscriber] Processing raw event",
		slog.Any("region_id", event.RegionID),
		slog.String("event_type", string(event.Type)),
		slog.String("message_id", msg.ID),
	)

	s.transitions.HandleEvent(ctx, event)
}
