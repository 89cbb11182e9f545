package usecases

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/supportdesk/supportdesk/internal/application/ticket/dto"
	"github.com/supportdesk/supportdesk/internal/domain/shared/events"
	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	"github.com/supportdesk/supportdesk/internal/shared/biztime"
	"github.com/supportdesk/supportdesk/internal/shared/constants"
	"github.com/supportdesk/supportdesk/internal/shared/db"
	"github.com/supportdesk/supportdesk/internal/shared/errors"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

type SendMessageCommand struct {
	TicketID string
	Content  string
	Actor    Actor
}

// Skip reasons reported when SendMessage leaves the ticket untouched.
const (
	SkipReasonEmpty    = "empty"
	SkipReasonResolved = "resolved"
)

type SendMessageResult struct {
	Sent       bool
	SkipReason string
	Message    *dto.MessageDTO
	Ticket     *dto.TicketDTO
}

// SendMessageUseCase appends a chat message. Blank content and resolved
// tickets are silently ignored.
type SendMessageUseCase struct {
	ticketRepo ticket.TicketRepository
	txManager  db.TransactionManager
	publisher  events.EventPublisher
	renderer   dto.Renderer
	logger     logger.Interface
}

func NewSendMessageUseCase(
	ticketRepo ticket.TicketRepository,
	txManager db.TransactionManager,
	publisher events.EventPublisher,
	renderer dto.Renderer,
	logger logger.Interface,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		ticketRepo: ticketRepo,
		txManager:  txManager,
		publisher:  publisher,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, cmd SendMessageCommand) (*SendMessageResult, error) {
	uc.logger.Infow("executing send message use case", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID)

	if cmd.Actor.UserID == "" {
		return nil, errors.NewUnauthorizedError("login required")
	}

	var (
		result = &SendMessageResult{}
		target *ticket.Ticket
		msg    *ticket.Message
	)
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
		if err != nil {
			return err
		}
		if !t.CanBeAccessedBy(cmd.Actor.UserID, cmd.Actor.Role) {
			return ticket.ErrTicketNotFound
		}
		target = t

		if strings.TrimSpace(cmd.Content) == "" {
			result.SkipReason = SkipReasonEmpty
			return nil
		}
		if !t.CanReply() {
			result.SkipReason = SkipReasonResolved
			return nil
		}

		msg, err = ticket.NewMessage(t.ID(), cmd.Content, cmd.Actor.Role, cmd.Actor.Name, biztime.NowUTC())
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := t.AppendMessage(msg); err != nil {
			return err
		}

		updated, err := uc.ticketRepo.Update(ctx, t)
		if err != nil {
			return err
		}
		result.Sent = updated
		return nil
	})
	if err != nil {
		if stderrors.Is(err, ticket.ErrTicketNotFound) {
			return nil, errors.NewNotFoundError(constants.ErrMsgTicketNotFound)
		}
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to send message", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to send message")
	}

	result.Ticket = dto.ToTicketDTO(target, uc.renderer)
	if !result.Sent {
		uc.logger.Infow("message ignored", "ticket_id", cmd.TicketID, "reason", result.SkipReason)
		return result, nil
	}

	m := dto.ToMessageDTO(msg, uc.renderer)
	result.Message = &m
	publishEvent(uc.publisher, uc.logger, ticket.NewMessageSentEvent(target, msg))

	uc.logger.Infow("message sent successfully", "ticket_id", cmd.TicketID, "message_id", msg.ID())
	return result, nil
}
