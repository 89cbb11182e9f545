package http

import (
	appsession "github.com/supportdesk/supportdesk/internal/application/session"
	"github.com/supportdesk/supportdesk/internal/application/ticket/usecases"
	"github.com/supportdesk/supportdesk/internal/interfaces/http/middleware"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Session
	sessionService *appsession.Service

	// Ticket
	createTicketUC *usecases.CreateTicketUseCase
	updateTicketUC *usecases.UpdateTicketUseCase
	sendMessageUC  *usecases.SendMessageUseCase
	changeStatusUC *usecases.ChangeStatusUseCase
	getTicketUC    *usecases.GetTicketUseCase
	listTicketsUC  *usecases.ListTicketsUseCase
	getDashboardUC *usecases.GetDashboardUseCase
}

func (c *Container) initUseCases() {
	log := c.log
	repo := c.repos.ticketRepo
	tx := c.repos.txManager

	c.ucs = &allUseCases{
		sessionService: appsession.NewService(c.repos.sessionStore, log.Named("session")),

		createTicketUC: usecases.NewCreateTicketUseCase(repo, tx, c.dispatcher, c.renderer, log),
		updateTicketUC: usecases.NewUpdateTicketUseCase(repo, tx, c.dispatcher, c.renderer, log),
		sendMessageUC:  usecases.NewSendMessageUseCase(repo, tx, c.dispatcher, c.renderer, log),
		changeStatusUC: usecases.NewChangeStatusUseCase(repo, tx, c.dispatcher, c.renderer, log),
		getTicketUC:    usecases.NewGetTicketUseCase(repo, c.renderer, log),
		listTicketsUC:  usecases.NewListTicketsUseCase(repo, log),
		getDashboardUC: usecases.NewGetDashboardUseCase(repo, log),
	}

	c.sessionMiddleware = middleware.NewSessionMiddleware(c.ucs.sessionService, c.cfg.Session, log)
}
