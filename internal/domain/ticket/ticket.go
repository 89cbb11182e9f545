package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
	"github.com/supportdesk/supportdesk/internal/shared/id"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
	maxAttachments       = 10
)

// Submitter identifies who opened a ticket. It is copied onto the ticket at
// creation and never changes afterwards.
type Submitter struct {
	UserID string
	Name   string
	Email  string
}

// Draft is the input to NewTicket.
type Draft struct {
	Title       string
	Description string
	Priority    vo.Priority
	Submitter   Submitter
	Attachments []string
}

type Ticket struct {
	id          string
	title       string
	description string
	status      vo.TicketStatus
	priority    vo.Priority
	submitter   Submitter
	createdAt   time.Time
	updatedAt   time.Time
	messages    []*Message
	attachments []string
}

// NewTicket opens a ticket from a draft: fresh ID, status open, no messages,
// createdAt equal to updatedAt.
func NewTicket(draft Draft, now time.Time) (*Ticket, error) {
	title := draft.Title
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if strings.TrimSpace(draft.Description) == "" {
		return nil, fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(draft.Description) > maxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	priority := draft.Priority
	if priority == "" {
		priority = vo.DefaultPriority
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if draft.Submitter.UserID == "" {
		return nil, fmt.Errorf("submitter user ID is required")
	}
	if len(draft.Attachments) > maxAttachments {
		return nil, fmt.Errorf("at most %d attachments are allowed", maxAttachments)
	}

	sid, err := id.NewTicketID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ticket ID: %w", err)
	}

	return &Ticket{
		id:          sid,
		title:       title,
		description: draft.Description,
		status:      vo.StatusOpen,
		priority:    priority,
		submitter:   draft.Submitter,
		createdAt:   now,
		updatedAt:   now,
		messages:    []*Message{},
		attachments: cloneStrings(draft.Attachments),
	}, nil
}

// ReconstructTicket rebuilds a ticket from stored or client-supplied state.
// Every message must reference this ticket.
func ReconstructTicket(
	ticketID string,
	title string,
	description string,
	status vo.TicketStatus,
	priority vo.Priority,
	submitter Submitter,
	createdAt, updatedAt time.Time,
	messages []*Message,
	attachments []string,
) (*Ticket, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if submitter.UserID == "" {
		return nil, fmt.Errorf("submitter user ID is required")
	}
	for _, m := range messages {
		if m == nil {
			return nil, fmt.Errorf("message cannot be nil")
		}
		if m.TicketID() != ticketID {
			return nil, fmt.Errorf("message %s: %w", m.ID(), ErrMessageTicketMismatch)
		}
	}

	msgs := make([]*Message, len(messages))
	copy(msgs, messages)

	return &Ticket{
		id:          ticketID,
		title:       title,
		description: description,
		status:      status,
		priority:    priority,
		submitter:   submitter,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		messages:    msgs,
		attachments: cloneStrings(attachments),
	}, nil
}

func (t *Ticket) ID() string {
	return t.id
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Submitter() Submitter {
	return t.submitter
}

func (t *Ticket) UserID() string {
	return t.submitter.UserID
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) Messages() []*Message {
	messagesCopy := make([]*Message, len(t.messages))
	copy(messagesCopy, t.messages)
	return messagesCopy
}

func (t *Ticket) MessageCount() int {
	return len(t.messages)
}

func (t *Ticket) Attachments() []string {
	return cloneStrings(t.attachments)
}

// CanReply is false once the ticket is resolved.
func (t *Ticket) CanReply() bool {
	return t.status.AcceptsMessages()
}

// CanBeAccessedBy applies the owner-or-admin rule.
func (t *Ticket) CanBeAccessedBy(userID string, role authorization.UserRole) bool {
	return authorization.CanAccessOwnedBy(userID, role, t.submitter.UserID)
}

// AppendMessage adds m at the end of the thread and stamps updatedAt with the
// message time.
func (t *Ticket) AppendMessage(m *Message) error {
	if m == nil {
		return fmt.Errorf("message cannot be nil")
	}
	if m.TicketID() != t.id {
		return ErrMessageTicketMismatch
	}
	if !t.CanReply() {
		return ErrTicketResolved
	}

	t.messages = append(t.messages, m)
	t.updatedAt = m.Timestamp()
	return nil
}

// ChangeStatus moves the ticket to newStatus. It reports false without
// touching updatedAt when the status is already newStatus.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus, now time.Time) (bool, error) {
	if !newStatus.IsValid() {
		return false, fmt.Errorf("invalid status: %s", newStatus)
	}
	if t.status == newStatus {
		return false, nil
	}
	if !t.status.CanTransitionTo(newStatus) {
		return false, fmt.Errorf("cannot transition from %s to %s", t.status, newStatus)
	}

	t.status = newStatus
	t.updatedAt = now
	return true, nil
}

// Clone returns a copy that shares no mutable state with t. Messages are
// immutable and shared.
func (t *Ticket) Clone() *Ticket {
	c := *t
	c.messages = t.Messages()
	c.attachments = cloneStrings(t.attachments)
	return &c
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
