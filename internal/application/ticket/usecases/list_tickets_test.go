package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	apperrors "github.com/supportdesk/supportdesk/internal/shared/errors"
)

func TestListTicketsUseCase_Execute_Scoping(t *testing.T) {
	tests := []struct {
		name       string
		query      ListTicketsQuery
		wantFilter ticket.TicketFilter
		wantType   apperrors.ErrorType
	}{
		{
			name:       "user sees own tickets",
			query:      ListTicketsQuery{Actor: johnActor},
			wantFilter: ticket.TicketFilter{UserID: johnActor.UserID},
		},
		{
			name:       "admin sees all",
			query:      ListTicketsQuery{Actor: adminActor},
			wantFilter: ticket.TicketFilter{},
		},
		{
			name:       "admin status filter",
			query:      ListTicketsQuery{Actor: adminActor, Status: "in-progress"},
			wantFilter: ticket.TicketFilter{Status: vo.StatusInProgress},
		},
		{
			name:     "invalid status filter",
			query:    ListTicketsQuery{Actor: adminActor, Status: "pending"},
			wantType: apperrors.ErrorTypeValidation,
		},
		{
			name:     "anonymous",
			query:    ListTicketsQuery{},
			wantType: apperrors.ErrorTypeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFilter ticket.TicketFilter
			repo := &mockTicketRepository{
				ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
					gotFilter = filter
					return nil, nil
				},
			}
			uc := NewListTicketsUseCase(repo, testLogger())

			items, err := uc.Execute(context.Background(), tt.query)

			if tt.wantType != "" {
				appErr := apperrors.GetAppError(err)
				require.NotNil(t, appErr)
				assert.Equal(t, tt.wantType, appErr.Type)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Equal(t, tt.wantFilter, gotFilter)
		})
	}
}

func TestGetTicketUseCase_Execute(t *testing.T) {
	existing := existingTicket(t, "tkt_1", johnActor, vo.StatusOpen)
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
			if ticketID == "tkt_1" {
				return existing, nil
			}
			return nil, ticket.ErrTicketNotFound
		},
	}
	uc := NewGetTicketUseCase(repo, nil, testLogger())

	got, err := uc.Execute(context.Background(), GetTicketQuery{TicketID: "tkt_1", Actor: johnActor})
	require.NoError(t, err)
	assert.Equal(t, "tkt_1", got.ID)

	got, err = uc.Execute(context.Background(), GetTicketQuery{TicketID: "tkt_1", Actor: adminActor})
	require.NoError(t, err)
	assert.Equal(t, johnActor.Name, got.UserName)

	_, err = uc.Execute(context.Background(), GetTicketQuery{TicketID: "tkt_1", Actor: janeActor})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.Execute(context.Background(), GetTicketQuery{TicketID: "tkt_2", Actor: adminActor})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestGetDashboardUseCase_Execute(t *testing.T) {
	d := newDesk()
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		_, err := d.create.Execute(ctx, CreateTicketCommand{Title: title, Description: "d", Actor: johnActor})
		require.NoError(t, err)
	}
	janes, err := d.create.Execute(ctx, CreateTicketCommand{Title: "J", Description: "d", Actor: janeActor})
	require.NoError(t, err)
	_, err = d.status.Execute(ctx, ChangeStatusCommand{TicketID: janes.ID, NewStatus: "resolved", Actor: adminActor})
	require.NoError(t, err)

	own, err := d.dashboard.Execute(ctx, GetDashboardQuery{Actor: johnActor})
	require.NoError(t, err)
	assert.Equal(t, 3, own.Total)
	assert.Equal(t, 3, own.Open)
	assert.Equal(t, 0, own.Resolved)

	all, err := d.dashboard.Execute(ctx, GetDashboardQuery{Actor: adminActor})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Total)
	assert.Equal(t, 3, all.Open)
	assert.Equal(t, 1, all.Resolved)
	assert.Equal(t, 1, all.ByStatus["resolved"])
}
