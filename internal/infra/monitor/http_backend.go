// Package monitor contains clients for the external proximity-monitoring
// backend that owns all location sensing.
package monitor

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"geocue/internal/domain/entity"
	"geocue/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultRequestTimeout = 30 * time.Second

// httpBackend implements MonitorBackend by sending JSON requests to the
// backend's watch-set endpoint.
type httpBackend struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// registerRequest is the wire form of a watch-set registration.
type registerRequest struct {
	RegionID          string  `json:"region_id"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	RadiusMeters      float64 `json:"radius_meters"`
	DwellDelaySeconds int     `json:"dwell_delay_seconds"`
}

// NewHTTPBackend creates a monitoring-backend client for the given endpoint.
func NewHTTPBackend(endpoint string, timeout time.Duration, logger *slog.Logger) service.MonitorBackend {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &httpBackend{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// RegisterRegion adds or replaces a watched region. The request is keyed by
// region id, so re-registering is idempotent on the backend side.
func (b *httpBackend) RegisterRegion(ctx context.Context, region *entity.Region, dwellDelay time.Duration) error {
	payload := registerRequest{
		RegionID:          region.ID.String(),
		Latitude:          region.Latitude(),
		Longitude:         region.Longitude(),
		RadiusMeters:      region.RadiusMeters,
		DwellDelaySeconds: int(dwellDelay.Seconds()),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+"/regions", bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := b.do(req); err != nil {
		return err
	}

	b.logger.Debug("[Monitor] Region registered",
		slog.String("region_id", payload.RegionID),
		slog.Float64("radius_meters", payload.RadiusMeters),
	)

	return nil
}

// UnregisterRegion removes one region from the watch-set.
func (b *httpBackend) UnregisterRegion(ctx context.Context, regionID uuid.UUID) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, b.endpoint+"/regions/"+regionID.String(), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	return b.do(req)
}

// UnregisterAll clears the backend's entire watch-set.
func (b *httpBackend) UnregisterAll(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, b.endpoint+"/regions", nil)
	if err != nil {
		return errors.WithStack(err)
	}

	return b.do(req)
}

func (b *httpBackend) do(req *http.Request) error {
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("monitoring backend returned non-success status: %d", resp.StatusCode)
	}

	return nil
}
