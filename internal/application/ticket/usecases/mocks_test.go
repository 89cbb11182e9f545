package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/supportdesk/supportdesk/internal/domain/shared/events"
	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc    func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc  func(ctx context.Context, t *ticket.Ticket) (bool, error)
	GetByIDFunc func(ctx context.Context, ticketID string) (*ticket.Ticket, error)
	ListFunc    func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) (bool, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return true, nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

// sliceTicketRepository is a minimal newest-first store for behavioural tests.
type sliceTicketRepository struct {
	mu      sync.Mutex
	tickets []*ticket.Ticket
}

func (r *sliceTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = append([]*ticket.Ticket{t.Clone()}, r.tickets...)
	return nil
}

func (r *sliceTicketRepository) Update(ctx context.Context, t *ticket.Ticket) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.tickets {
		if existing.ID() == t.ID() {
			r.tickets[i] = t.Clone()
			return true, nil
		}
	}
	return false, nil
}

func (r *sliceTicketRepository) GetByID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tickets {
		if t.ID() == ticketID {
			return t.Clone(), nil
		}
	}
	return nil, ticket.ErrTicketNotFound
}

func (r *sliceTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*ticket.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		if filter.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockEventPublisher struct {
	mu        sync.Mutex
	published []events.DomainEvent
	err       error
}

func (m *mockEventPublisher) Publish(event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, event)
	return nil
}

func (m *mockEventPublisher) PublishAll(evts []events.DomainEvent) error {
	for _, e := range evts {
		if err := m.Publish(e); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockEventPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.published))
	for _, e := range m.published {
		out = append(out, e.GetEventType())
	}
	return out
}

type stubRenderer struct{}

func (stubRenderer) Render(s string) string { return "<p>" + s + "</p>" }

var (
	johnActor  = Actor{UserID: "usr_john", Name: "John Doe", Email: "john@example.com", Role: authorization.RoleUser}
	janeActor  = Actor{UserID: "usr_jane", Name: "Jane Smith", Email: "jane@example.com", Role: authorization.RoleUser}
	adminActor = Actor{UserID: "usr_agent", Name: "Support Agent", Email: "agent@example.com", Role: authorization.RoleAdmin}
)

func testLogger() logger.Interface {
	return logger.NewDiscardLogger()
}

func existingTicket(t *testing.T, ticketID string, owner Actor, status vo.TicketStatus) *ticket.Ticket {
	t.Helper()
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	tk, err := ticket.ReconstructTicket(
		ticketID,
		"Unable to reset password",
		"Reset email never arrives",
		status,
		vo.PriorityHigh,
		ticket.Submitter{UserID: owner.UserID, Name: owner.Name, Email: owner.Email},
		at,
		at,
		nil,
		nil,
	)
	require.NoError(t, err)
	return tk
}

// desk wires every mutating and reading use case over one shared store.
type desk struct {
	repo      *sliceTicketRepository
	publisher *mockEventPublisher
	create    *CreateTicketUseCase
	update    *UpdateTicketUseCase
	send      *SendMessageUseCase
	status    *ChangeStatusUseCase
	get       *GetTicketUseCase
	list      *ListTicketsUseCase
	dashboard *GetDashboardUseCase
}

func newDesk() *desk {
	repo := &sliceTicketRepository{}
	tx := &passthroughTxManager{}
	pub := &mockEventPublisher{}
	log := testLogger()
	return &desk{
		repo:      repo,
		publisher: pub,
		create:    NewCreateTicketUseCase(repo, tx, pub, stubRenderer{}, log),
		update:    NewUpdateTicketUseCase(repo, tx, pub, stubRenderer{}, log),
		send:      NewSendMessageUseCase(repo, tx, pub, stubRenderer{}, log),
		status:    NewChangeStatusUseCase(repo, tx, pub, stubRenderer{}, log),
		get:       NewGetTicketUseCase(repo, stubRenderer{}, log),
		list:      NewListTicketsUseCase(repo, log),
		dashboard: NewGetDashboardUseCase(repo, log),
	}
}
