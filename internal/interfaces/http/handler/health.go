package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stocktally/backend/internal/interfaces/http/dto"
)

// Pinger reports whether a backing dependency is reachable
type Pinger interface {
	Ping() error
}

// HealthHandler exposes liveness and readiness endpoints
type HealthHandler struct {
	db      Pinger
	started time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		started: time.Now(),
	}
}

// Health reports process liveness
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	}))
}

// Ready reports whether the service can reach its database
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("NOT_READY", "Database unreachable"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ready"}))
}
