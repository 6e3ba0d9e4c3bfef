package main

import (
	"context"
	"log/slog"
	"os"

	"geocue/config"
	"geocue/internal/delivery"
	"geocue/internal/delivery/http"
	"geocue/internal/delivery/http/middleware"
	"geocue/internal/delivery/http/router/handler"
	"geocue/internal/domain/constants"
	"geocue/internal/domain/service"
	"geocue/internal/infra/capability"
	logs "geocue/internal/infra/log"
	"geocue/internal/infra/monitor"
	"geocue/internal/infra/notification"
	"geocue/internal/infra/persistence/postgres"
	"geocue/internal/infra/pubsub"
	"geocue/internal/infra/throttle"
	"geocue/internal/usecase"
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
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			reconcileOnStart,
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
			monitor.NewMonitorBackend,
			newPresenter,
			pubsub.NewEventPublisher,
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
			impl.NewRegionService,
			impl.NewMonitorService,
			impl.NewTransitionService,
			impl.NewDispatchService,
			impl.NewHistoryService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewRegionHandler,
			handler.NewHistoryHandler,
			handler.NewMonitorHandler,
			handler.NewTestHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// reconcileOnStart re-applies the desired watch-set once on process start, so
// the backend recovers from anything missed while the service was down.
func reconcileOnStart(ctx context.Context, logger *slog.Logger, monitorUC usecase.MonitorUsecase) {
	if err := monitorUC.Reconcile(ctx); err != nil {
		logger.Warn("Startup reconcile failed", slog.Any("error", err))
	}
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
