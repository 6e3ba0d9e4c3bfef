package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"geocue/internal/delivery/http/response"
	"geocue/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HistoryHandler holds dependencies for notification-history handlers.
type HistoryHandler struct {
	uc     usecase.HistoryUsecase
	logger *slog.Logger
}

// NewHistoryHandler is the constructor for HistoryHandler, injected by Fx.
func NewHistoryHandler(uc usecase.HistoryUsecase, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListHistory returns all records inside the retention window, newest first.
func (h *HistoryHandler) ListHistory(c echo.Context) error {
	records, err := h.uc.Recent(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, records, "")
}

// ListHistoryForRegion returns in-window records scoped to one region.
func (h *HistoryHandler) ListHistoryForRegion(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_REGION_ID", "Region id must be a UUID")
	}

	records, err := h.uc.RecentForRegion(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, records, "")
}

// ClearHistory deletes every record unconditionally.
func (h *HistoryHandler) ClearHistory(c echo.Context) error {
	if err := h.uc.Clear(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "History cleared")
}

// StreamHistory serves the live-updating view as Server-Sent Events: one
// `record` event per append, until the client disconnects.
func (h *HistoryHandler) StreamHistory(c echo.Context) error {
	ctx := c.Request().Context()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	records, cancel := h.uc.Watch(ctx)
	defer cancel()

	for record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			h.logger.Error("Failed to encode history record for stream", slog.Any("error", err))

			continue
		}

		if _, err := fmt.Fprintf(res, "event: record\ndata: %s\n\n", payload); err != nil {
			// Client went away.
			return nil
		}
		res.Flush()
	}

	return nil
}
