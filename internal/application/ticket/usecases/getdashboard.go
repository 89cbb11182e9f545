package usecases

import (
	"context"

	"github.com/supportdesk/supportdesk/internal/application/ticket/dto"
	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	"github.com/supportdesk/supportdesk/internal/shared/errors"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

type GetDashboardQuery struct {
	Actor Actor
}

type GetDashboardUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetDashboardUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context, query GetDashboardQuery) (*dto.DashboardDTO, error) {
	filter, err := scopeFilter(query.Actor, "")
	if err != nil {
		return nil, err
	}

	tickets, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to load dashboard tickets", "user_id", query.Actor.UserID, "error", err)
		return nil, errors.NewInternalError("failed to load dashboard")
	}

	d := dto.BuildDashboard(tickets)
	return &d, nil
}
