package ticket

import (
	"time"

	"github.com/supportdesk/supportdesk/internal/domain/shared/events"
)

const (
	EventTicketCreated       = "ticket.created"
	EventTicketMessageSent   = "ticket.message_sent"
	EventTicketStatusChanged = "ticket.status_changed"
	EventTicketReplaced      = "ticket.replaced"
)

type TicketCreatedEvent struct {
	events.BaseEvent
	Title     string
	Priority  string
	UserID    string
	UserEmail string
}

func NewTicketCreatedEvent(t *Ticket) TicketCreatedEvent {
	return TicketCreatedEvent{
		BaseEvent: events.NewBaseEvent(t.ID(), EventTicketCreated, t.CreatedAt()),
		Title:     t.Title(),
		Priority:  t.Priority().String(),
		UserID:    t.UserID(),
		UserEmail: t.Submitter().Email,
	}
}

type MessageSentEvent struct {
	events.BaseEvent
	MessageID   string
	TicketTitle string
	SenderRole  string
	SenderName  string
	Content     string
	OwnerName   string
	OwnerEmail  string
}

func NewMessageSentEvent(t *Ticket, m *Message) MessageSentEvent {
	return MessageSentEvent{
		BaseEvent:   events.NewBaseEvent(t.ID(), EventTicketMessageSent, m.Timestamp()),
		MessageID:   m.ID(),
		TicketTitle: t.Title(),
		SenderRole:  m.SenderRole().String(),
		SenderName:  m.SenderName(),
		Content:     m.Content(),
		OwnerName:   t.Submitter().Name,
		OwnerEmail:  t.Submitter().Email,
	}
}

type TicketStatusChangedEvent struct {
	events.BaseEvent
	OldStatus string
	NewStatus string
	ChangedBy string
}

func NewTicketStatusChangedEvent(ticketID, oldStatus, newStatus, changedBy string, timestamp time.Time) TicketStatusChangedEvent {
	return TicketStatusChangedEvent{
		BaseEvent: events.NewBaseEvent(ticketID, EventTicketStatusChanged, timestamp),
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
	}
}

type TicketReplacedEvent struct {
	events.BaseEvent
	ReplacedBy   string
	MessageCount int
}

func NewTicketReplacedEvent(t *Ticket, replacedBy string, timestamp time.Time) TicketReplacedEvent {
	return TicketReplacedEvent{
		BaseEvent:    events.NewBaseEvent(t.ID(), EventTicketReplaced, timestamp),
		ReplacedBy:   replacedBy,
		MessageCount: t.MessageCount(),
	}
}
