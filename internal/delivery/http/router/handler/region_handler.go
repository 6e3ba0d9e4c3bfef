// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"geocue/internal/delivery/http/response"
	"geocue/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RegionHandler holds dependencies for region-registry handlers.
type RegionHandler struct {
	uc     usecase.RegionUsecase
	logger *slog.Logger
}

// NewRegionHandler is the constructor for RegionHandler, injected by Fx.
func NewRegionHandler(uc usecase.RegionUsecase, logger *slog.Logger) *RegionHandler {
	return &RegionHandler{
		uc:     uc,
		logger: logger,
	}
}

// regionRequest is the request body for create and update.
type regionRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	Address       string  `json:"address" validate:"max=255"`
	Latitude      float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude     float64 `json:"longitude" validate:"min=-180,max=180"`
	RadiusMeters  float64 `json:"radius_meters" validate:"required,gt=0"`
	EntryMessage  string  `json:"entry_message"`
	ExitMessage   string  `json:"exit_message"`
	NotifyOnEntry bool    `json:"notify_on_entry"`
	NotifyOnExit  bool    `json:"notify_on_exit"`
	Enabled       bool    `json:"enabled"`
}

func (r *regionRequest) toInput() *usecase.RegionInput {
	return &usecase.RegionInput{
		Name:          r.Name,
		Address:       r.Address,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		RadiusMeters:  r.RadiusMeters,
		EntryMessage:  r.EntryMessage,
		ExitMessage:   r.ExitMessage,
		NotifyOnEntry: r.NotifyOnEntry,
		NotifyOnExit:  r.NotifyOnExit,
		Enabled:       r.Enabled,
	}
}

// CreateRegion handles the region creation request.
func (h *RegionHandler) CreateRegion(c echo.Context) error {
	var req regionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid region input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	region, err := h.uc.AddRegion(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, region, "Region created successfully")
}

// UpdateRegion handles the region update request.
func (h *RegionHandler) UpdateRegion(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_REGION_ID", "Region id must be a UUID")
	}

	var req regionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid region input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	region, err := h.uc.UpdateRegion(c.Request().Context(), id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, region, "Region updated successfully")
}

// DeleteRegion handles the region deletion request.
func (h *RegionHandler) DeleteRegion(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_REGION_ID", "Region id must be a UUID")
	}

	if err := h.uc.RemoveRegion(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Region deleted successfully")
}

// GetRegion handles the single-region fetch request.
func (h *RegionHandler) GetRegion(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_REGION_ID", "Region id must be a UUID")
	}

	region, err := h.uc.GetRegion(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, region, "")
}

// ListRegions handles the region listing request.
func (h *RegionHandler) ListRegions(c echo.Context) error {
	regions, err := h.uc.ListRegions(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, regions, "")
}
