package seeds

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/supportdesk/supportdesk/internal/domain/user"
	uservo "github.com/supportdesk/supportdesk/internal/domain/user/valueobjects"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
	"github.com/supportdesk/supportdesk/internal/shared/biztime"
	"github.com/supportdesk/supportdesk/internal/shared/id"
)

//go:embed sample_tickets.yaml
var sampleTickets []byte

type seedFile struct {
	Tickets []seedTicket `yaml:"tickets"`
}

type seedTicket struct {
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Status      string        `yaml:"status"`
	Priority    string        `yaml:"priority"`
	UserName    string        `yaml:"user_name"`
	UserEmail   string        `yaml:"user_email"`
	CreatedAt   string        `yaml:"created_at"`
	UpdatedAt   string        `yaml:"updated_at"`
	Attachments []string      `yaml:"attachments"`
	Messages    []seedMessage `yaml:"messages"`
}

type seedMessage struct {
	Content    string `yaml:"content"`
	SenderRole string `yaml:"sender_role"`
	SenderName string `yaml:"sender_name"`
	Timestamp  string `yaml:"timestamp"`
}

// LoadTickets parses seed data from path, or the embedded sample set when
// path is empty. The result is in display order, newest first.
func LoadTickets(path string) ([]*ticket.Ticket, error) {
	data := sampleTickets
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = raw
	}
	return ParseTickets(data)
}

// ParseTickets builds tickets from YAML seed data.
func ParseTickets(data []byte) ([]*ticket.Ticket, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(file.Tickets))
	for i, st := range file.Tickets {
		t, err := st.toDomain()
		if err != nil {
			return nil, fmt.Errorf("seed ticket %d (%q): %w", i, st.Title, err)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// SeedTickets saves tickets so that the first one ends up on top.
func SeedTickets(ctx context.Context, repo ticket.TicketRepository, tickets []*ticket.Ticket) error {
	for i := len(tickets) - 1; i >= 0; i-- {
		if err := repo.Save(ctx, tickets[i]); err != nil {
			return fmt.Errorf("failed to seed ticket %s: %w", tickets[i].ID(), err)
		}
	}
	return nil
}

func (st seedTicket) toDomain() (*ticket.Ticket, error) {
	ticketID, err := id.NewTicketID()
	if err != nil {
		return nil, err
	}

	email, err := uservo.NewEmail(st.UserEmail)
	if err != nil {
		return nil, err
	}

	createdAt, err := biztime.ParseISO(st.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := biztime.ParseISO(st.UpdatedAt)
	if err != nil {
		return nil, err
	}

	status, err := vo.NewTicketStatus(st.Status)
	if err != nil {
		return nil, err
	}
	priority, err := vo.NewPriority(st.Priority)
	if err != nil {
		return nil, err
	}

	messages := make([]*ticket.Message, 0, len(st.Messages))
	for _, sm := range st.Messages {
		msg, err := sm.toDomain(ticketID)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return ticket.ReconstructTicket(
		ticketID,
		st.Title,
		st.Description,
		status,
		priority,
		ticket.Submitter{
			UserID: user.IDForEmail(email.String()),
			Name:   st.UserName,
			Email:  email.String(),
		},
		createdAt,
		updatedAt,
		messages,
		st.Attachments,
	)
}

func (sm seedMessage) toDomain(ticketID string) (*ticket.Message, error) {
	messageID, err := id.NewMessageID()
	if err != nil {
		return nil, err
	}
	role, err := authorization.ParseUserRole(sm.SenderRole)
	if err != nil {
		return nil, err
	}
	ts, err := biztime.ParseISO(sm.Timestamp)
	if err != nil {
		return nil, err
	}
	return ticket.ReconstructMessage(messageID, ticketID, sm.Content, role, sm.SenderName, ts)
}
