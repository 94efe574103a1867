package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stocktally/backend/internal/infrastructure/auth"
	"github.com/stocktally/backend/internal/interfaces/http/handler"
	"github.com/stocktally/backend/internal/interfaces/http/middleware"
)

// RouterConfig carries the dependencies of the HTTP surface
type RouterConfig struct {
	Logger     *zap.Logger
	JWTService *auth.JWTService

	Sessions  *handler.SessionHandler
	Inventory *handler.InventoryHandler
	Health    *handler.HealthHandler
}

// NewRouter builds the gin engine with all routes registered. Everything
// under /api/v1 requires a valid bearer token.
func NewRouter(cfg RouterConfig) *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Logger),
	)

	engine.GET("/health", cfg.Health.Health)
	engine.GET("/ready", cfg.Health.Ready)

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTService))

	sessions := api.Group("/count-sessions")
	{
		sessions.POST("", cfg.Sessions.Create)
		sessions.GET("", cfg.Sessions.List)
		sessions.GET("/:id", cfg.Sessions.Get)
		sessions.DELETE("/:id", cfg.Sessions.Delete)
		sessions.PUT("/:id/lines", cfg.Sessions.RecordLine)
		sessions.DELETE("/:id/lines/:lineId", cfg.Sessions.RemoveLine)
		sessions.POST("/:id/complete", cfg.Sessions.Complete)
		sessions.POST("/:id/cancel", cfg.Sessions.Cancel)
	}

	locations := api.Group("/locations/:locationId")
	{
		locations.GET("/levels", cfg.Inventory.ListLevels)
		locations.GET("/levels/:itemId", cfg.Inventory.GetLevel)
		locations.GET("/levels/:itemId/adjustments", cfg.Inventory.ListItemAdjustments)
	}

	api.GET("/adjustments", cfg.Inventory.ListAdjustments)

	return engine
}
