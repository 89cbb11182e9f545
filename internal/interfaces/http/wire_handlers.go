package http

import (
	sessionHandlers "github.com/supportdesk/supportdesk/internal/interfaces/http/handlers/session"
	systemHandlers "github.com/supportdesk/supportdesk/internal/interfaces/http/handlers/system"
	ticketHandlers "github.com/supportdesk/supportdesk/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	systemHandler  *systemHandlers.Handler
	sessionHandler *sessionHandlers.Handler
	ticketHandler  *ticketHandlers.Handler
}

func (c *Container) initHandlers() {
	u := c.ucs

	c.hdlrs = &allHandlers{
		systemHandler:  systemHandlers.NewHandler(),
		sessionHandler: sessionHandlers.NewHandler(u.sessionService, c.cfg.Session, c.log),
		ticketHandler: ticketHandlers.NewHandler(
			u.createTicketUC,
			u.updateTicketUC,
			u.sendMessageUC,
			u.changeStatusUC,
			u.getTicketUC,
			u.listTicketsUC,
			u.getDashboardUC,
			c.log,
		),
	}
}
