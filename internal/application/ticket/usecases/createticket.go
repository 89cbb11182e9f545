package usecases

import (
	"context"

	"github.com/supportdesk/supportdesk/internal/application/ticket/dto"
	"github.com/supportdesk/supportdesk/internal/domain/shared/events"
	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/supportdesk/supportdesk/internal/shared/biztime"
	"github.com/supportdesk/supportdesk/internal/shared/db"
	"github.com/supportdesk/supportdesk/internal/shared/errors"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title       string
	Description string
	// Priority defaults to medium when empty.
	Priority    string
	Attachments []string
	Actor       Actor
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	txManager  db.TransactionManager
	publisher  events.EventPublisher
	renderer   dto.Renderer
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	txManager db.TransactionManager,
	publisher events.EventPublisher,
	renderer dto.Renderer,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		txManager:  txManager,
		publisher:  publisher,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case", "title", cmd.Title, "user_id", cmd.Actor.UserID)

	if cmd.Actor.UserID == "" {
		return nil, errors.NewUnauthorizedError("login required")
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	newTicket, err := ticket.NewTicket(ticket.Draft{
		Title:       cmd.Title,
		Description: cmd.Description,
		Priority:    priority,
		Submitter: ticket.Submitter{
			UserID: cmd.Actor.UserID,
			Name:   cmd.Actor.Name,
			Email:  cmd.Actor.Email,
		},
		Attachments: cmd.Attachments,
	}, biztime.NowUTC())
	if err != nil {
		uc.logger.Warnw("invalid ticket draft", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return uc.ticketRepo.Save(ctx, newTicket)
	})
	if err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}

	publishEvent(uc.publisher, uc.logger, ticket.NewTicketCreatedEvent(newTicket))

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID(), "priority", newTicket.Priority())

	return dto.ToTicketDTO(newTicket, uc.renderer), nil
}
