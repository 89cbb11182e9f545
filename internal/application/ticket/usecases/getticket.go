package usecases

import (
	"context"
	stderrors "errors"

	"github.com/supportdesk/supportdesk/internal/application/ticket/dto"
	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	"github.com/supportdesk/supportdesk/internal/shared/constants"
	"github.com/supportdesk/supportdesk/internal/shared/errors"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID string
	Actor    Actor
}

// GetTicketUseCase loads one ticket with its thread. Tickets the actor may
// not see are reported as not found.
type GetTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	renderer   dto.Renderer
	logger     logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	renderer dto.Renderer,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		if stderrors.Is(err, ticket.ErrTicketNotFound) {
			return nil, errors.NewNotFoundError(constants.ErrMsgTicketNotFound)
		}
		uc.logger.Errorw("failed to get ticket", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}

	if !t.CanBeAccessedBy(query.Actor.UserID, query.Actor.Role) {
		uc.logger.Warnw("ticket access denied", "ticket_id", query.TicketID, "user_id", query.Actor.UserID)
		return nil, errors.NewNotFoundError(constants.ErrMsgTicketNotFound)
	}

	return dto.ToTicketDTO(t, uc.renderer), nil
}
