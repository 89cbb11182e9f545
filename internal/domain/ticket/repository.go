package ticket

import (
	"context"

	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
)

// TicketRepository keeps tickets newest first.
type TicketRepository interface {
	// Save inserts t ahead of every existing ticket.
	Save(ctx context.Context, t *Ticket) error
	// Update replaces the stored ticket with t's ID. It reports false and
	// changes nothing when no ticket has that ID.
	Update(ctx context.Context, t *Ticket) (bool, error)
	// GetByID returns ErrTicketNotFound for unknown IDs.
	GetByID(ctx context.Context, ticketID string) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, error)
}

// TicketFilter narrows List. Zero values match everything.
type TicketFilter struct {
	UserID string
	Status vo.TicketStatus
}

// Matches reports whether t passes the filter.
func (f TicketFilter) Matches(t *Ticket) bool {
	if f.UserID != "" && t.UserID() != f.UserID {
		return false
	}
	if f.Status != "" && t.Status() != f.Status {
		return false
	}
	return true
}
