package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	appsession "github.com/supportdesk/supportdesk/internal/application/session"
	"github.com/supportdesk/supportdesk/internal/shared/config"
	"github.com/supportdesk/supportdesk/internal/shared/constants"
	"github.com/supportdesk/supportdesk/internal/shared/errors"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
	"github.com/supportdesk/supportdesk/internal/shared/utils"
)

// SessionResolver loads the session behind a token.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (appsession.State, error)
}

type SessionMiddleware struct {
	sessions SessionResolver
	cfg      config.SessionConfig
	logger   logger.Interface
}

func NewSessionMiddleware(sessions SessionResolver, cfg config.SessionConfig, logger logger.Interface) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

// LoadSession resolves the request's session token. Unknown or expired
// tokens leave an anonymous session in the context.
func (m *SessionMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.GetSessionToken(c, m.cfg)

		state, err := m.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			m.logger.Errorw("failed to resolve session", "error", err)
			utils.AbortWithError(c, err)
			return
		}

		SetSession(c, state)
		c.Next()
	}
}

// RequireIdentity rejects requests without a logged-in user.
func (m *SessionMiddleware) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).IsAuthenticated() {
			utils.AbortWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests unless an admin is logged in.
func (m *SessionMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := CurrentSession(c)
		if !state.IsAuthenticated() {
			utils.AbortWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
			return
		}
		if !state.User.IsAdmin() {
			m.logger.Warnw("non-admin attempted admin route",
				"user_id", state.User.ID(),
				"path", c.Request.URL.Path,
			)
			utils.AbortWithError(c, errors.NewForbiddenError(constants.ErrMsgForbidden))
			return
		}
		c.Next()
	}
}

// SetSession stores state in the gin context along with the user id and
// role keys read by logging.
func SetSession(c *gin.Context, state appsession.State) {
	c.Set(constants.ContextKeySession, state)
	if state.User != nil {
		c.Set(constants.ContextKeyUserID, state.User.ID())
		c.Set(constants.ContextKeyUserRole, state.User.Role().String())
	}
}

// CurrentSession returns the session loaded for this request, or an
// anonymous one.
func CurrentSession(c *gin.Context) appsession.State {
	if v, ok := c.Get(constants.ContextKeySession); ok {
		if state, ok := v.(appsession.State); ok {
			return state
		}
	}
	return appsession.State{}
}
