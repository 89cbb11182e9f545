package dto

import (
	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/supportdesk/supportdesk/internal/shared/biztime"
)

// Renderer turns message content into display HTML.
type Renderer interface {
	Render(markdown string) string
}

type TicketDTO struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Status       string       `json:"status"`
	StatusLabel  string       `json:"statusLabel"`
	Priority     string       `json:"priority"`
	UserID       string       `json:"userId"`
	UserName     string       `json:"userName"`
	UserEmail    string       `json:"userEmail"`
	CreatedAt    string       `json:"createdAt"`
	UpdatedAt    string       `json:"updatedAt"`
	Messages     []MessageDTO `json:"messages"`
	Attachments  []string     `json:"attachments,omitempty"`
	MessageCount int          `json:"messageCount"`
	CanReply     bool         `json:"canReply"`
}

type MessageDTO struct {
	ID          string `json:"id"`
	TicketID    string `json:"ticketId"`
	Content     string `json:"content"`
	ContentHTML string `json:"contentHtml,omitempty"`
	SenderRole  string `json:"senderRole"`
	SenderName  string `json:"senderName"`
	Timestamp   string `json:"timestamp"`
}

// TicketListItemDTO is the dashboard row: everything but the thread.
type TicketListItemDTO struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	StatusLabel  string `json:"statusLabel"`
	Priority     string `json:"priority"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
	MessageCount int    `json:"messageCount"`
	CanReply     bool   `json:"canReply"`
}

type DashboardDTO struct {
	Total    int            `json:"total"`
	Open     int            `json:"open"`
	Resolved int            `json:"resolved"`
	ByStatus map[string]int `json:"byStatus"`
}

// ToTicketDTO renders a ticket with its thread. renderer may be nil, in which
// case contentHtml is left empty.
func ToTicketDTO(t *ticket.Ticket, renderer Renderer) *TicketDTO {
	if t == nil {
		return nil
	}

	messages := t.Messages()
	messageDTOs := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		messageDTOs = append(messageDTOs, ToMessageDTO(m, renderer))
	}

	sub := t.Submitter()
	return &TicketDTO{
		ID:           t.ID(),
		Title:        t.Title(),
		Description:  t.Description(),
		Status:       t.Status().String(),
		StatusLabel:  t.Status().Label(),
		Priority:     t.Priority().String(),
		UserID:       sub.UserID,
		UserName:     sub.Name,
		UserEmail:    sub.Email,
		CreatedAt:    biztime.FormatISO(t.CreatedAt()),
		UpdatedAt:    biztime.FormatISO(t.UpdatedAt()),
		Messages:     messageDTOs,
		Attachments:  t.Attachments(),
		MessageCount: len(messageDTOs),
		CanReply:     t.CanReply(),
	}
}

func ToMessageDTO(m *ticket.Message, renderer Renderer) MessageDTO {
	out := MessageDTO{
		ID:         m.ID(),
		TicketID:   m.TicketID(),
		Content:    m.Content(),
		SenderRole: m.SenderRole().String(),
		SenderName: m.SenderName(),
		Timestamp:  biztime.FormatISO(m.Timestamp()),
	}
	if renderer != nil {
		out.ContentHTML = renderer.Render(m.Content())
	}
	return out
}

func ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	sub := t.Submitter()
	return TicketListItemDTO{
		ID:           t.ID(),
		Title:        t.Title(),
		Description:  t.Description(),
		Status:       t.Status().String(),
		StatusLabel:  t.Status().Label(),
		Priority:     t.Priority().String(),
		UserID:       sub.UserID,
		UserName:     sub.Name,
		UserEmail:    sub.Email,
		CreatedAt:    biztime.FormatISO(t.CreatedAt()),
		UpdatedAt:    biztime.FormatISO(t.UpdatedAt()),
		MessageCount: t.MessageCount(),
		CanReply:     t.CanReply(),
	}
}

func ToTicketListItemDTOs(tickets []*ticket.Ticket) []TicketListItemDTO {
	items := make([]TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, ToTicketListItemDTO(t))
	}
	return items
}

// BuildDashboard counts tickets. Open means anything not resolved.
func BuildDashboard(tickets []*ticket.Ticket) DashboardDTO {
	d := DashboardDTO{
		Total:    len(tickets),
		ByStatus: make(map[string]int, len(vo.AllStatuses)),
	}
	for _, s := range vo.AllStatuses {
		d.ByStatus[s.String()] = 0
	}
	for _, t := range tickets {
		d.ByStatus[t.Status().String()]++
		if t.Status().IsResolved() {
			d.Resolved++
		} else {
			d.Open++
		}
	}
	return d
}
