package ticket

import (
	"fmt"

	"github.com/supportdesk/supportdesk/internal/application/ticket/dto"
	"github.com/supportdesk/supportdesk/internal/application/ticket/usecases"
	"github.com/supportdesk/supportdesk/internal/shared/biztime"
)

type CreateTicketRequest struct {
	Title       string   `json:"title" binding:"required,notblank,max=200"`
	Description string   `json:"description" binding:"required,notblank,max=5000"`
	Priority    string   `json:"priority" binding:"omitempty,ticketpriority"`
	Attachments []string `json:"attachments" binding:"omitempty,max=10,dive,notblank,max=255"`
}

func (r *CreateTicketRequest) ToCommand(actor usecases.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Attachments: r.Attachments,
		Actor:       actor,
	}
}

// SendMessageRequest leaves content unvalidated on purpose: blank content is
// a silent no-op, not an error.
type SendMessageRequest struct {
	Content string `json:"content" binding:"max=5000"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,ticketstatus"`
}

// MessageRecordRequest is one message inside a full ticket record.
type MessageRecordRequest struct {
	ID         string `json:"id" binding:"required"`
	TicketID   string `json:"ticketId" binding:"required"`
	Content    string `json:"content" binding:"max=5000"`
	SenderRole string `json:"senderRole" binding:"required,userrole"`
	SenderName string `json:"senderName" binding:"max=100"`
	Timestamp  string `json:"timestamp" binding:"required"`
}

// UpdateTicketRequest is a complete ticket record, in the same shape the
// ticket endpoints return.
type UpdateTicketRequest struct {
	ID          string                 `json:"id" binding:"required"`
	Title       string                 `json:"title" binding:"required,notblank,max=200"`
	Description string                 `json:"description" binding:"max=5000"`
	Status      string                 `json:"status" binding:"required,ticketstatus"`
	Priority    string                 `json:"priority" binding:"required,ticketpriority"`
	UserID      string                 `json:"userId" binding:"required"`
	UserName    string                 `json:"userName" binding:"max=100"`
	UserEmail   string                 `json:"userEmail" binding:"max=255"`
	CreatedAt   string                 `json:"createdAt" binding:"required"`
	UpdatedAt   string                 `json:"updatedAt" binding:"required"`
	Messages    []MessageRecordRequest `json:"messages" binding:"dive"`
	Attachments []string               `json:"attachments" binding:"omitempty,max=10,dive,max=255"`
}

func (r *UpdateTicketRequest) ToCommand(actor usecases.Actor) (usecases.UpdateTicketCommand, error) {
	createdAt, err := biztime.ParseISO(r.CreatedAt)
	if err != nil {
		return usecases.UpdateTicketCommand{}, fmt.Errorf("createdAt: %w", err)
	}
	updatedAt, err := biztime.ParseISO(r.UpdatedAt)
	if err != nil {
		return usecases.UpdateTicketCommand{}, fmt.Errorf("updatedAt: %w", err)
	}

	messages := make([]usecases.MessageRecord, 0, len(r.Messages))
	for i, m := range r.Messages {
		ts, err := biztime.ParseISO(m.Timestamp)
		if err != nil {
			return usecases.UpdateTicketCommand{}, fmt.Errorf("messages[%d].timestamp: %w", i, err)
		}
		messages = append(messages, usecases.MessageRecord{
			ID:         m.ID,
			TicketID:   m.TicketID,
			Content:    m.Content,
			SenderRole: m.SenderRole,
			SenderName: m.SenderName,
			Timestamp:  ts,
		})
	}

	return usecases.UpdateTicketCommand{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		UserID:      r.UserID,
		UserName:    r.UserName,
		UserEmail:   r.UserEmail,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		Messages:    messages,
		Attachments: r.Attachments,
		Actor:       actor,
	}, nil
}

type UpdateTicketResponse struct {
	Updated bool           `json:"updated"`
	Ticket  *dto.TicketDTO `json:"ticket,omitempty"`
}

type SendMessageResponse struct {
	Sent       bool            `json:"sent"`
	SkipReason string          `json:"skipReason,omitempty"`
	Message    *dto.MessageDTO `json:"message,omitempty"`
	Ticket     *dto.TicketDTO  `json:"ticket,omitempty"`
}

type ChangeStatusResponse struct {
	Found     bool           `json:"found"`
	Changed   bool           `json:"changed"`
	OldStatus string         `json:"oldStatus,omitempty"`
	NewStatus string         `json:"newStatus,omitempty"`
	Ticket    *dto.TicketDTO `json:"ticket,omitempty"`
}
