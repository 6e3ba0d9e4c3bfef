package handler

import (
	"net/http"

	"geocue/internal/delivery/http/response"
	"geocue/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MonitorHandler exposes the reconcile operation over HTTP.
type MonitorHandler struct {
	uc usecase.MonitorUsecase
}

// NewMonitorHandler is the constructor for MonitorHandler, injected by Fx.
func NewMonitorHandler(uc usecase.MonitorUsecase) *MonitorHandler {
	return &MonitorHandler{uc: uc}
}

// Reconcile re-applies the full desired watch-set against the monitoring
// backend on demand.
func (h *MonitorHandler) Reconcile(c echo.Context) error {
	if err := h.uc.Reconcile(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Reconcile completed")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
