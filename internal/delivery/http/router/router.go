// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"geocue/config"
	"geocue/internal/delivery/http/middleware"
	"geocue/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	RegionHandler  *handler.RegionHandler
	HistoryHandler *handler.HistoryHandler
	MonitorHandler *handler.MonitorHandler
	TestHandler    *handler.TestHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	regionHandler  *handler.RegionHandler
	historyHandler *handler.HistoryHandler
	monitorHandler *handler.MonitorHandler
	testHandler    *handler.TestHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		regionHandler:  params.RegionHandler,
		historyHandler: params.HistoryHandler,
		monitorHandler: params.MonitorHandler,
		testHandler:    params.TestHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	api.Use(r.authMiddleware.Authenticate)

	regionGroup := api.Group("/regions")
	{
		regionGroup.POST("", r.regionHandler.CreateRegion)
		regionGroup.GET("", r.regionHandler.ListRegions)
		regionGroup.GET("/:id", r.regionHandler.GetRegion)
		regionGroup.PUT("/:id", r.regionHandler.UpdateRegion)
		regionGroup.DELETE("/:id", r.regionHandler.DeleteRegion)
	}

	historyGroup := api.Group("/history")
	{
		historyGroup.GET("", r.historyHandler.ListHistory)
		historyGroup.GET("/stream", r.historyHandler.StreamHistory)
		historyGroup.GET("/regions/:id", r.historyHandler.ListHistoryForRegion)
		historyGroup.DELETE("", r.historyHandler.ClearHistory)
	}

	api.POST("/reconcile", r.monitorHandler.Reconcile)

	if r.cfg.TestRoutes != nil && r.cfg.TestRoutes.Enabled {
		testGroup := e.Group("/test")
		{
			testGroup.GET("/auth", r.testHandler.TestAuthMiddleware, r.authMiddleware.Authenticate)
			testGroup.GET("/regions/containing", r.testHandler.RegionsContaining)
			testGroup.POST("/events", r.testHandler.InjectEvent)
		}
	}
}
