package repository

import (
	"context"
	"sync"

	"github.com/supportdesk/supportdesk/internal/domain/ticket"
)

// MemoryTicketRepository keeps tickets in a slice, newest first. Stored
// tickets are cloned on the way in and out so callers never share state
// with the store.
type MemoryTicketRepository struct {
	mu      sync.RWMutex
	tickets []*ticket.Ticket
}

func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{}
}

func (r *MemoryTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*ticket.Ticket, 0, len(r.tickets)+1)
	next = append(next, t.Clone())
	next = append(next, r.tickets...)
	r.tickets = next
	return nil
}

func (r *MemoryTicketRepository) Update(ctx context.Context, t *ticket.Ticket) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

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

func (r *MemoryTicketRepository) GetByID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.tickets {
		if existing.ID() == ticketID {
			return existing.Clone(), nil
		}
	}
	return nil, ticket.ErrTicketNotFound
}

func (r *MemoryTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*ticket.Ticket, 0, len(r.tickets))
	for _, existing := range r.tickets {
		if filter.Matches(existing) {
			result = append(result, existing.Clone())
		}
	}
	return result, nil
}
