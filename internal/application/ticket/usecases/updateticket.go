package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/supportdesk/supportdesk/internal/application/ticket/dto"
	"github.com/supportdesk/supportdesk/internal/domain/shared/events"
	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
	"github.com/supportdesk/supportdesk/internal/shared/biztime"
	"github.com/supportdesk/supportdesk/internal/shared/db"
	"github.com/supportdesk/supportdesk/internal/shared/errors"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

// MessageRecord is a message as carried in a full ticket record.
type MessageRecord struct {
	ID         string
	TicketID   string
	Content    string
	SenderRole string
	SenderName string
	Timestamp  time.Time
}

// UpdateTicketCommand carries a complete ticket record. It replaces the
// stored ticket with the same ID as is; updatedAt is not restamped.
type UpdateTicketCommand struct {
	ID          string
	Title       string
	Description string
	Status      string
	Priority    string
	UserID      string
	UserName    string
	UserEmail   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Messages    []MessageRecord
	Attachments []string
	Actor       Actor
}

type UpdateTicketResult struct {
	// Updated is false when no visible ticket had the ID.
	Updated bool
	Ticket  *dto.TicketDTO
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	txManager  db.TransactionManager
	publisher  events.EventPublisher
	renderer   dto.Renderer
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	txManager db.TransactionManager,
	publisher events.EventPublisher,
	renderer dto.Renderer,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		txManager:  txManager,
		publisher:  publisher,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.ID, "user_id", cmd.Actor.UserID)

	replacement, err := buildReplacement(cmd)
	if err != nil {
		uc.logger.Warnw("invalid ticket record", "ticket_id", cmd.ID, "error", err)
		return nil, errors.NewValidationError("invalid ticket record", err.Error())
	}

	updated := false
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := uc.ticketRepo.GetByID(ctx, cmd.ID)
		if stderrors.Is(err, ticket.ErrTicketNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if !existing.CanBeAccessedBy(cmd.Actor.UserID, cmd.Actor.Role) {
			return nil
		}
		if !cmd.Actor.IsAdmin() && replacement.UserID() != existing.UserID() {
			return errors.NewValidationError("ticket owner cannot be changed")
		}

		updated, err = uc.ticketRepo.Update(ctx, replacement)
		return err
	})
	if errors.IsAppError(err) {
		return nil, err
	}
	if err != nil {
		uc.logger.Errorw("failed to replace ticket", "ticket_id", cmd.ID, "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	if !updated {
		uc.logger.Infow("ticket replace ignored, no matching ticket", "ticket_id", cmd.ID)
		return &UpdateTicketResult{Updated: false}, nil
	}

	publishEvent(uc.publisher, uc.logger, ticket.NewTicketReplacedEvent(replacement, cmd.Actor.UserID, biztime.NowUTC()))

	uc.logger.Infow("ticket replaced successfully", "ticket_id", cmd.ID, "messages", replacement.MessageCount())

	return &UpdateTicketResult{
		Updated: true,
		Ticket:  dto.ToTicketDTO(replacement, uc.renderer),
	}, nil
}

func buildReplacement(cmd UpdateTicketCommand) (*ticket.Ticket, error) {
	status, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		return nil, err
	}
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, err
	}

	messages := make([]*ticket.Message, 0, len(cmd.Messages))
	for i, rec := range cmd.Messages {
		role, err := authorization.ParseUserRole(rec.SenderRole)
		if err != nil {
			return nil, fmt.Errorf("messages[%d]: %w", i, err)
		}
		m, err := ticket.ReconstructMessage(rec.ID, rec.TicketID, rec.Content, role, rec.SenderName, rec.Timestamp.UTC())
		if err != nil {
			return nil, fmt.Errorf("messages[%d]: %w", i, err)
		}
		messages = append(messages, m)
	}

	return ticket.ReconstructTicket(
		cmd.ID,
		cmd.Title,
		cmd.Description,
		status,
		priority,
		ticket.Submitter{UserID: cmd.UserID, Name: cmd.UserName, Email: cmd.UserEmail},
		cmd.CreatedAt.UTC(),
		cmd.UpdatedAt.UTC(),
		messages,
		cmd.Attachments,
	)
}
