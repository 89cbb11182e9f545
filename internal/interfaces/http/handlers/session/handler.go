package session

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appsession "github.com/supportdesk/supportdesk/internal/application/session"
	"github.com/supportdesk/supportdesk/internal/interfaces/http/middleware"
	"github.com/supportdesk/supportdesk/internal/shared/config"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
	"github.com/supportdesk/supportdesk/internal/shared/utils"
)

// SessionService is the login-flow API the handler drives.
type SessionService interface {
	SelectLoginType(ctx context.Context, state appsession.State, role string) (appsession.State, error)
	ClearLoginType(ctx context.Context, state appsession.State) (appsession.State, error)
	Login(ctx context.Context, state appsession.State, cmd appsession.LoginCommand) (appsession.State, error)
	Logout(ctx context.Context, state appsession.State) (appsession.State, error)
}

type Handler struct {
	sessions SessionService
	cfg      config.SessionConfig
	logger   logger.Interface
}

func NewHandler(sessions SessionService, cfg config.SessionConfig, logger logger.Interface) *Handler {
	return &Handler{
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

// GetSession handles GET /session
func (h *Handler) GetSession(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", toSessionResponse(middleware.CurrentSession(c)))
}

// SelectLoginType handles POST /session/login-type
func (h *Handler) SelectLoginType(c *gin.Context) {
	var req SelectLoginTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for select login type", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	state, err := h.sessions.SelectLoginType(c.Request.Context(), middleware.CurrentSession(c), req.Role)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetSessionCookie(c, h.cfg, state.Token)
	utils.SuccessResponse(c, http.StatusOK, "", toSessionResponse(state))
}

// ClearLoginType handles DELETE /session/login-type
func (h *Handler) ClearLoginType(c *gin.Context) {
	state, err := h.sessions.ClearLoginType(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toSessionResponse(state))
}

// Login handles POST /session/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for login", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	state, err := h.sessions.Login(c.Request.Context(), middleware.CurrentSession(c), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetSessionCookie(c, h.cfg, state.Token)
	utils.SuccessResponse(c, http.StatusOK, "Logged in", toSessionResponse(state))
}

// Logout handles POST /session/logout
func (h *Handler) Logout(c *gin.Context) {
	state, err := h.sessions.Logout(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ClearSessionCookie(c, h.cfg)
	utils.SuccessResponse(c, http.StatusOK, "Logged out", toSessionResponse(state))
}
