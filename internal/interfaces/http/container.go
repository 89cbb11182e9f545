package http

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/supportdesk/supportdesk/internal/domain/shared/events"
	"github.com/supportdesk/supportdesk/internal/infrastructure/config"
	"github.com/supportdesk/supportdesk/internal/infrastructure/database"
	"github.com/supportdesk/supportdesk/internal/infrastructure/metrics"
	"github.com/supportdesk/supportdesk/internal/interfaces/http/middleware"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
	"github.com/supportdesk/supportdesk/internal/shared/services/markdown"
)

// Container holds every component of the desk: stores, event plumbing, use
// cases, handlers and middlewares. Shutdown releases what it started.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	cfg    *config.Config
	log    logger.Interface
	db     *gorm.DB
	redis  *redis.Client

	// Repositories and session store
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	sessionMiddleware *middleware.SessionMiddleware
	loginRateLimiter  *middleware.RateLimiter

	// Cross-cutting services
	renderer   markdown.MarkdownService
	dispatcher *events.InMemoryEventDispatcher
	metrics    *metrics.Recorder
}

// NewContainer wires the desk from cfg. On error, anything already started is
// shut down again.
func NewContainer(ctx context.Context, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - ticket store, sessions, Redis
	if err := c.initInfrastructure(ctx); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 2: Events - dispatcher, metrics, audit log, reply emails
	if err := c.initEvents(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 3: Use cases and handlers
	c.initUseCases()
	c.initHandlers()

	// Section 4: Sample data
	if cfg.Seed.Enabled {
		if err := c.seed(ctx); err != nil {
			c.Shutdown()
			return nil, err
		}
	}

	return c, nil
}

// Shutdown stops the dispatcher after draining queued events and closes the
// store and Redis connections.
func (c *Container) Shutdown() {
	if c.dispatcher != nil {
		if err := c.dispatcher.Stop(); err != nil && !errors.Is(err, events.ErrDispatcherNotRunning) {
			c.log.Errorw("failed to stop event dispatcher", "error", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close redis client", "error", err)
		}
	}

	if c.db != nil {
		if err := database.Close(); err != nil {
			c.log.Errorw("failed to close ticket store", "error", err)
		}
	}
}
