// Package system serves the unauthenticated liveness endpoints.
package system

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supportdesk/supportdesk/internal/shared/version"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "supportdesk",
	})
}

// Version handles GET /version
func (h *Handler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    version.Version,
		"commit":     version.Commit,
		"build_time": version.BuildTime,
	})
}
