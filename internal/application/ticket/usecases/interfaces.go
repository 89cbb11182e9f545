package usecases

import (
	"context"

	"github.com/supportdesk/supportdesk/internal/application/ticket/dto"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
)

// Actor is the logged-in identity a use case acts for.
type Actor struct {
	UserID string
	Name   string
	Email  string
	Role   authorization.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error)
}

type SendMessageExecutor interface {
	Execute(ctx context.Context, cmd SendMessageCommand) (*SendMessageResult, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) ([]dto.TicketListItemDTO, error)
}

type GetDashboardExecutor interface {
	Execute(ctx context.Context, query GetDashboardQuery) (*dto.DashboardDTO, error)
}
