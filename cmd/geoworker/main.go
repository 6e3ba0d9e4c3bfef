package main

import (
	"context"
	"log/slog"
	"os"

	"geocue/config"
	"geocue/internal/delivery"
	"geocue/internal/delivery/subscriber"
	"geocue/internal/delivery/worker"
	"geocue/internal/delivery/worker/handler"
	"geocue/internal/domain/constants"
	"geocue/internal/domain/service"
	"geocue/internal/infra/capability"
	logs "geocue/internal/infra/log"
	"geocue/internal/infra/notification"
	"geocue/internal/infra/persistence/postgres"
	"geocue/internal/infra/throttle"
	"geocue/internal/usecase/impl"
	"geocue/internal/util"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		newThrottle,
		util.NewKeyMutex,
	)
}

func newThrottle() *throttle.Throttle {
	return throttle.New(constants.ThrottleWindow, nil)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewRegionRepository,
			postgres.NewTransitionStateRepository,
			postgres.NewHistoryRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newCapabilityChecker,
			newPresenter,
		),
	)
}

func newCapabilityChecker(cfg *config.Config) service.CapabilityChecker {
	return capability.NewStaticChecker(cfg.Capabilities)
}

// newPresenter creates the presentation channel; without Firebase configured
// notifications only reach the logs.
func newPresenter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Presenter, error) {
	if cfg.Firebase == nil {
		return notification.NewLogPresenter(logger), nil
	}

	return notification.NewFirebasePresenter(ctx, cfg.Firebase)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewTransitionService,
			impl.NewDispatchService,
			impl.NewHistoryService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				subscriber.NewSubscriber,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
