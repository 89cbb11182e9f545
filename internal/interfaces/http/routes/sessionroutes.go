package routes

import (
	"github.com/gin-gonic/gin"

	sessionhandlers "github.com/supportdesk/supportdesk/internal/interfaces/http/handlers/session"
)

type SessionRouteConfig struct {
	SessionHandler *sessionhandlers.Handler
	// LoginLimiter guards POST /session/login when set.
	LoginLimiter gin.HandlerFunc
}

func SetupSessionRoutes(engine *gin.Engine, config *SessionRouteConfig) {
	session := engine.Group("/session")
	{
		session.GET("", config.SessionHandler.GetSession)

		session.POST("/login-type", config.SessionHandler.SelectLoginType)
		session.DELETE("/login-type", config.SessionHandler.ClearLoginType)

		login := []gin.HandlerFunc{config.SessionHandler.Login}
		if config.LoginLimiter != nil {
			login = append([]gin.HandlerFunc{config.LoginLimiter}, login...)
		}
		session.POST("/login", login...)
		session.POST("/logout", config.SessionHandler.Logout)
	}
}
