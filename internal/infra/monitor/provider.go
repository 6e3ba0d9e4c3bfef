package monitor

import (
	"context"
	"log/slog"
	"time"

	"geocue/config"
	"geocue/internal/domain/entity"
	"geocue/internal/domain/service"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// noopBackend is used when no monitoring backend is configured: the watch-set
// simply stays empty.
type noopBackend struct {
	logger *slog.Logger
}

func (b *noopBackend) RegisterRegion(_ context.Context, region *entity.Region, _ time.Duration) error {
	b.logger.Debug("[NoopMonitor] Backend not configured, skipping register",
		slog.String("region_id", region.ID.String()),
	)

	return nil
}

func (b *noopBackend) UnregisterRegion(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (b *noopBackend) UnregisterAll(_ context.Context) error {
	return nil
}

// BackendParams holds dependencies for MonitorBackend, injected by Fx
type BackendParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewMonitorBackend creates a MonitorBackend based on configuration
func NewMonitorBackend(params BackendParams) service.MonitorBackend {
	cfg := params.Config.Monitor
	logger := params.Logger

	if cfg == nil || cfg.Endpoint == "" {
		logger.Info("Monitoring backend not configured, using no-op backend")

		return &noopBackend{logger: logger}
	}

	logger.Info("Using HTTP monitoring backend",
		slog.String("endpoint", cfg.Endpoint),
	)

	return NewHTTPBackend(cfg.Endpoint, cfg.Timeout, logger)
}
