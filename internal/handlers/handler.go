package handlers

import (
	"pumpstation/internal/logger"
	"pumpstation/internal/metrics"
	"pumpstation/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Device protocol endpoints (polled by the controller firmware)
	h.registerDeviceRoutes(router)

	// Versioned dashboard API
	h.registerDashboardRoutes(router)

	// Live state stream for the dashboard — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerDeviceRoutes(r *gin.Engine) {
	device := r.Group("/device")
	{
		device.GET("/commands", h.readCommands)
		device.POST("/level", h.reportLevel)
		device.POST("/pump-state", h.confirmPump)
		device.POST("/fault", h.reportFault)
		device.POST("/fault/clear", h.clearFault)
	}
}

func (h *Handler) registerDashboardRoutes(r *gin.Engine) {
	api := r.Group("/api/v1/dashboard")
	{
		api.GET("/state", h.dashboardState)
		api.POST("/automatic-mode", h.setAutomaticMode)
		api.POST("/pump", h.requestPump)
		api.GET("/faults", h.listFaults)
	}
}
