package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/supportdesk/supportdesk/internal/shared/authorization"
	"github.com/supportdesk/supportdesk/internal/shared/id"
)

const maxMessageLength = 5000

// Message is one chat entry on a ticket. It is immutable once created.
type Message struct {
	id         string
	ticketID   string
	content    string
	senderRole authorization.UserRole
	senderName string
	timestamp  time.Time
}

// NewMessage builds a message with a fresh ID. Content is kept exactly as
// typed; it is only rejected when nothing but whitespace remains.
func NewMessage(
	ticketID string,
	content string,
	senderRole authorization.UserRole,
	senderName string,
	timestamp time.Time,
) (*Message, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return nil, fmt.Errorf("content exceeds maximum length of %d characters", maxMessageLength)
	}
	if !senderRole.IsValid() {
		return nil, fmt.Errorf("invalid sender role: %s", senderRole)
	}

	sid, err := id.NewMessageID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate message ID: %w", err)
	}

	return &Message{
		id:         sid,
		ticketID:   ticketID,
		content:    content,
		senderRole: senderRole,
		senderName: senderName,
		timestamp:  timestamp,
	}, nil
}

func ReconstructMessage(
	messageID string,
	ticketID string,
	content string,
	senderRole authorization.UserRole,
	senderName string,
	timestamp time.Time,
) (*Message, error) {
	if messageID == "" {
		return nil, fmt.Errorf("message ID is required")
	}
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !senderRole.IsValid() {
		return nil, fmt.Errorf("invalid sender role: %s", senderRole)
	}

	return &Message{
		id:         messageID,
		ticketID:   ticketID,
		content:    content,
		senderRole: senderRole,
		senderName: senderName,
		timestamp:  timestamp,
	}, nil
}

func (m *Message) ID() string {
	return m.id
}

func (m *Message) TicketID() string {
	return m.ticketID
}

func (m *Message) Content() string {
	return m.content
}

func (m *Message) SenderRole() authorization.UserRole {
	return m.senderRole
}

func (m *Message) SenderName() string {
	return m.senderName
}

func (m *Message) Timestamp() time.Time {
	return m.timestamp
}

// IsFromAdmin reports whether support staff wrote the message.
func (m *Message) IsFromAdmin() bool {
	return m.senderRole.IsAdmin()
}
