package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/supportdesk/supportdesk/internal/infrastructure/config"
	"github.com/supportdesk/supportdesk/internal/interfaces/http/middleware"
	"github.com/supportdesk/supportdesk/internal/interfaces/http/routes"
	"github.com/supportdesk/supportdesk/internal/interfaces/http/validators"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

// Router is the desk's HTTP entry point.
type Router struct {
	*Container
}

// NewRouter builds the container behind the HTTP API.
func NewRouter(ctx context.Context, cfg *config.Config, log logger.Interface) (*Router, error) {
	if err := validators.Register(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	if r.metrics != nil {
		r.engine.Use(middleware.Metrics(r.metrics))
	}
	r.engine.Use(r.sessionMiddleware.LoadSession())

	systemConfig := &routes.SystemRouteConfig{SystemHandler: r.hdlrs.systemHandler}
	if r.metrics != nil {
		systemConfig.MetricsPath = r.cfg.Metrics.Path
		systemConfig.MetricsHandler = r.metrics.Handler()
	}
	routes.SetupSystemRoutes(r.engine, systemConfig)

	sessionConfig := &routes.SessionRouteConfig{SessionHandler: r.hdlrs.sessionHandler}
	if r.loginRateLimiter != nil {
		sessionConfig.LoginLimiter = r.loginRateLimiter.Limit()
	}
	routes.SetupSessionRoutes(r.engine, sessionConfig)

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:     r.hdlrs.ticketHandler,
		SessionMiddleware: r.sessionMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
