package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/database"
)

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	dbManager *database.Manager
	logger    coreport.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(dbManager *database.Manager, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{
		dbManager: dbManager,
		logger:    logger,
	}
}

// Root handles GET / and GET /api
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "capsule-market",
	})
}

// Health handles GET /health, including a database ping
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.dbManager.HealthCheck(c.Request.Context()); err != nil {
		h.logger.Error("Health check failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}
