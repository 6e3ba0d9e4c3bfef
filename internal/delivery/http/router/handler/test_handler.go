package handler

import (
	"net/http"
	"strconv"
	"time"

	"geocue/internal/delivery/http/response"
	"geocue/internal/domain/entity"
	"geocue/internal/domain/service"
	"geocue/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TestHandler handles diagnostic endpoints, registered only when test routes
// are enabled in config.
type TestHandler struct {
	regionUC  usecase.RegionUsecase
	publisher service.EventPublisher
}

// NewTestHandler creates a new TestHandler instance
func NewTestHandler(regionUC usecase.RegionUsecase, publisher service.EventPublisher) *TestHandler {
	return &TestHandler{
		regionUC:  regionUC,
		publisher: publisher,
	}
}

// TestAuthMiddleware tests the authentication middleware
// This endpoint requires a valid JWT token in the Authorization header
func (h *TestHandler) TestAuthMiddleware(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"subject": c.Get("subject"),
		"status":  "authenticated",
	}, "Authentication middleware test successful")
}

// RegionsContaining reports which regions' boundaries contain the queried
// point. Useful for checking a region's geometry without driving there.
func (h *TestHandler) RegionsContaining(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_COORDINATE", "lat must be a number")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_COORDINATE", "lng must be a number")
	}

	regions, err := h.regionUC.RegionsContaining(c.Request().Context(), lat, lng)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, regions, "")
}

// injectEventRequest is the request body for simulated raw events.
type injectEventRequest struct {
	RegionID  string `json:"region_id" validate:"required,uuid"`
	EventType string `json:"event_type" validate:"required,oneof=ENTER DWELL EXIT"`
}

// InjectEvent publishes a simulated raw event through the configured event
// source, walking the same path a real backend delivery would.
func (h *TestHandler) InjectEvent(c echo.Context) error {
	var req injectEventRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid event input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	regionID, err := uuid.Parse(req.RegionID)
	if err != nil {
		return response.BadRequest(c, "INVALID_REGION_ID", "Region id must be a UUID")
	}

	event := &entity.RawEvent{
		RegionID:   regionID,
		Type:       entity.RawEventType(req.EventType),
		OccurredAt: time.Now(),
	}
	if err := h.publisher.PublishRawEvent(c.Request().Context(), event); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusAccepted, event, "Event published")
}
