package http

import (
	"context"
	"fmt"
	"time"

	"github.com/supportdesk/supportdesk/internal/domain/shared/events"
	"github.com/supportdesk/supportdesk/internal/infrastructure/database"
	"github.com/supportdesk/supportdesk/internal/infrastructure/email"
	"github.com/supportdesk/supportdesk/internal/infrastructure/metrics"
	"github.com/supportdesk/supportdesk/internal/infrastructure/notification"
	"github.com/supportdesk/supportdesk/internal/infrastructure/persistence/seeds"
	"github.com/supportdesk/supportdesk/internal/infrastructure/ratelimit"
	"github.com/supportdesk/supportdesk/internal/interfaces/http/middleware"
	"github.com/supportdesk/supportdesk/internal/shared/services/markdown"
)

const loginRateLimitScope = "login"

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.cfg
	log := c.log

	repos, err := c.newRepositories()
	if err != nil {
		return err
	}
	c.repos = repos

	c.renderer = markdown.NewMarkdownService()

	// Redis is only needed for the login rate limiter.
	if cfg.RateLimit.Enabled {
		client, err := database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("rate limiting needs redis: %w", err)
		}
		c.redis = client
		log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())

		c.loginRateLimiter = middleware.NewRateLimiter(
			ratelimit.NewRedisRateLimiter(client),
			loginRateLimitScope,
			ratelimit.RateLimitConfig{
				Requests: cfg.RateLimit.Requests,
				Window:   cfg.RateLimit.Window(),
			},
			log,
		)
	}

	return nil
}

// initEvents starts the dispatcher and attaches the metrics recorder, the
// audit log and, when email is enabled, the reply notifier.
func (c *Container) initEvents() error {
	cfg := c.cfg
	log := c.log

	c.dispatcher = events.NewInMemoryEventDispatcher(cfg.Events.BufferSize, log)

	if cfg.Metrics.Enabled {
		c.metrics = metrics.NewRecorder()
		if err := c.metrics.Subscribe(c.dispatcher); err != nil {
			return fmt.Errorf("failed to subscribe metrics: %w", err)
		}
	}

	var notifier *notification.ReplyNotifier
	if cfg.Email.Enabled {
		mailer := email.NewSMTPEmailService(cfg.Email, c.renderer)
		notifier = notification.NewReplyNotifier(mailer, log.Named("email"))
		log.Infow("reply notifications enabled", "smtp_host", cfg.Email.SMTPHost, "smtp_port", cfg.Email.SMTPPort)
	}
	if err := notification.Subscribe(c.dispatcher, notification.NewAuditLogger(log), notifier); err != nil {
		return fmt.Errorf("failed to subscribe notifications: %w", err)
	}

	if err := c.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	log.Infow("event dispatcher started", "buffer_size", cfg.Events.BufferSize)
	return nil
}

// seed loads the sample tickets into the store. The first ticket in the file
// ends up first in the list.
func (c *Container) seed(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tickets, err := seeds.LoadTickets(c.cfg.Seed.Path)
	if err != nil {
		return fmt.Errorf("failed to load seed tickets: %w", err)
	}
	if err := seeds.SeedTickets(ctx, c.repos.ticketRepo, tickets); err != nil {
		return fmt.Errorf("failed to seed tickets: %w", err)
	}

	c.log.Infow("sample tickets seeded", "count", len(tickets))
	return nil
}
