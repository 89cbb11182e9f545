package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/supportdesk/supportdesk/internal/interfaces/http/handlers/ticket"
	"github.com/supportdesk/supportdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler     *tickethandlers.Handler
	SessionMiddleware *middleware.SessionMiddleware
}

// SetupTicketRoutes registers the user desk under /tickets and /dashboard and
// the support desk under /admin.
func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(config.SessionMiddleware.RequireIdentity())
	{
		tickets.POST("",
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			config.TicketHandler.ListTickets)

		tickets.POST("/:id/messages",
			config.TicketHandler.SendMessage)

		tickets.GET("/:id",
			config.TicketHandler.GetTicket)
		tickets.PUT("/:id",
			config.TicketHandler.UpdateTicket)
	}

	engine.GET("/dashboard",
		config.SessionMiddleware.RequireIdentity(),
		config.TicketHandler.GetDashboard)

	admin := engine.Group("/admin")
	admin.Use(config.SessionMiddleware.RequireAdmin())
	{
		admin.GET("/tickets",
			config.TicketHandler.ListTickets)
		admin.GET("/tickets/:id",
			config.TicketHandler.GetTicket)
		admin.PATCH("/tickets/:id/status",
			config.TicketHandler.ChangeStatus)
		admin.GET("/dashboard",
			config.TicketHandler.GetDashboard)
	}
}
