package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"eventstaff_backend/internal/handlers"
	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/metrics"
)

// Options are the route-level dependencies that are not handlers.
type Options struct {
	AuthMiddleware gin.HandlerFunc
	AuthRateLimit  gin.HandlerFunc
	Metrics        *metrics.Registry
	EnableSwagger  bool
}

// RegisterRoutes mounts the HTTP API under /api/v1 plus the operational
// endpoints.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, opts Options) {
	ginRouter.GET("/health", appHandlers.HealthHandler.Health)
	if opts.Metrics != nil {
		ginRouter.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if opts.EnableSwagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authMW := opts.AuthMiddleware
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authMW, opts.AuthRateLimit)
		appHandlers.ProfileHandler.RegisterRoutes(api, authMW)
		appHandlers.SubscriptionHandler.RegisterRoutes(api, authMW)
		appHandlers.EventHandler.RegisterRoutes(api, authMW)
		appHandlers.ApplicationHandler.RegisterRoutes(api, authMW)
		appHandlers.AttendanceHandler.RegisterRoutes(api, authMW)
		appHandlers.DashboardHandler.RegisterRoutes(api, authMW)
		appHandlers.WSHandler.RegisterRoutes(api, authMW)
	}
	logger.Info("HTTP routes registered", "swagger", opts.EnableSwagger)
}
