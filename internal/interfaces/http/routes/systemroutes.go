package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	systemhandlers "github.com/supportdesk/supportdesk/internal/interfaces/http/handlers/system"
)

type SystemRouteConfig struct {
	SystemHandler *systemhandlers.Handler
	// MetricsPath and MetricsHandler are both empty when metrics are off.
	MetricsPath    string
	MetricsHandler http.Handler
}

func SetupSystemRoutes(engine *gin.Engine, config *SystemRouteConfig) {
	engine.GET("/health", config.SystemHandler.HealthCheck)
	engine.GET("/version", config.SystemHandler.Version)

	if config.MetricsHandler != nil && config.MetricsPath != "" {
		engine.GET(config.MetricsPath, gin.WrapH(config.MetricsHandler))
	}
}
