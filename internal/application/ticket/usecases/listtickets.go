package usecases

import (
	"context"

	"github.com/supportdesk/supportdesk/internal/application/ticket/dto"
	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/supportdesk/supportdesk/internal/shared/errors"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

type ListTicketsQuery struct {
	// Status is optional; empty lists every status.
	Status string
	Actor  Actor
}

// ListTicketsUseCase lists tickets newest first. Users only ever see their
// own tickets; admins see all.
type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) ([]dto.TicketListItemDTO, error) {
	filter, err := scopeFilter(query.Actor, query.Status)
	if err != nil {
		return nil, err
	}

	tickets, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "user_id", query.Actor.UserID, "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	return dto.ToTicketListItemDTOs(tickets), nil
}

func scopeFilter(actor Actor, status string) (ticket.TicketFilter, error) {
	var filter ticket.TicketFilter
	if !actor.IsAdmin() {
		if actor.UserID == "" {
			return filter, errors.NewUnauthorizedError("login required")
		}
		filter.UserID = actor.UserID
	}
	if status != "" {
		s, err := vo.NewTicketStatus(status)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Status = s
	}
	return filter, nil
}
