package usecases

import (
	"context"
	stderrors "errors"

	"github.com/supportdesk/supportdesk/internal/application/ticket/dto"
	"github.com/supportdesk/supportdesk/internal/domain/shared/events"
	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/supportdesk/supportdesk/internal/shared/biztime"
	"github.com/supportdesk/supportdesk/internal/shared/constants"
	"github.com/supportdesk/supportdesk/internal/shared/db"
	"github.com/supportdesk/supportdesk/internal/shared/errors"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID  string
	NewStatus string
	Actor     Actor
}

type ChangeStatusResult struct {
	// Found is false for an unknown ticket; nothing else is reported then.
	Found     bool
	Changed   bool
	OldStatus string
	NewStatus string
	Ticket    *dto.TicketDTO
}

type ChangeStatusUseCase struct {
	ticketRepo ticket.TicketRepository
	txManager  db.TransactionManager
	publisher  events.EventPublisher
	renderer   dto.Renderer
	logger     logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	txManager db.TransactionManager,
	publisher events.EventPublisher,
	renderer dto.Renderer,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo: ticketRepo,
		txManager:  txManager,
		publisher:  publisher,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case", "ticket_id", cmd.TicketID, "new_status", cmd.NewStatus)

	if !cmd.Actor.IsAdmin() {
		return nil, errors.NewForbiddenError(constants.ErrMsgForbidden)
	}

	newStatus, err := vo.NewTicketStatus(cmd.NewStatus)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	result := &ChangeStatusResult{NewStatus: newStatus.String()}
	var target *ticket.Ticket
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
		if stderrors.Is(err, ticket.ErrTicketNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		result.Found = true
		result.OldStatus = t.Status().String()
		target = t

		changed, err := t.ChangeStatus(newStatus, biztime.NowUTC())
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if !changed {
			return nil
		}

		result.Changed, err = uc.ticketRepo.Update(ctx, t)
		return err
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to change ticket status", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to change ticket status")
	}

	if !result.Found {
		uc.logger.Infow("status change ignored, no matching ticket", "ticket_id", cmd.TicketID)
		return result, nil
	}

	result.Ticket = dto.ToTicketDTO(target, uc.renderer)
	if result.Changed {
		publishEvent(uc.publisher, uc.logger, ticket.NewTicketStatusChangedEvent(
			target.ID(), result.OldStatus, result.NewStatus, cmd.Actor.UserID, target.UpdatedAt(),
		))
		uc.logger.Infow("ticket status changed successfully",
			"ticket_id", cmd.TicketID, "old_status", result.OldStatus, "new_status", result.NewStatus)
	}

	return result, nil
}
