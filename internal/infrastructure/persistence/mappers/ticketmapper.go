package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/supportdesk/supportdesk/internal/infrastructure/persistence/models"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
	"github.com/supportdesk/supportdesk/internal/shared/biztime"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket and its messages to persistence models.
	ToModel(t *ticket.Ticket) (*models.TicketModel, []models.MessageModel, error)

	// ToDomain rebuilds a ticket from its row and its ordered message rows.
	ToDomain(model *models.TicketModel, messages []models.MessageModel) (*ticket.Ticket, error)
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) (*models.TicketModel, []models.MessageModel, error) {
	submitter := t.Submitter()
	model := &models.TicketModel{
		TicketID:    t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      t.Status().String(),
		Priority:    t.Priority().String(),
		UserID:      submitter.UserID,
		UserName:    submitter.Name,
		UserEmail:   submitter.Email,
		CreatedAt:   biztime.UnixMilli(t.CreatedAt()),
		UpdatedAt:   biztime.UnixMilli(t.UpdatedAt()),
	}

	if attachments := t.Attachments(); len(attachments) > 0 {
		raw, err := json.Marshal(attachments)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode attachments: %w", err)
		}
		model.Attachments = datatypes.JSON(raw)
	}

	msgs := t.Messages()
	rows := make([]models.MessageModel, 0, len(msgs))
	for i, msg := range msgs {
		rows = append(rows, models.MessageModel{
			MessageID:  msg.ID(),
			TicketID:   msg.TicketID(),
			Position:   i,
			Content:    msg.Content(),
			SenderRole: msg.SenderRole().String(),
			SenderName: msg.SenderName(),
			Timestamp:  biztime.UnixMilli(msg.Timestamp()),
		})
	}

	return model, rows, nil
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel, messages []models.MessageModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}

	msgs := make([]*ticket.Message, 0, len(messages))
	for _, row := range messages {
		role, err := authorization.ParseUserRole(row.SenderRole)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", row.MessageID, err)
		}
		msg, err := ticket.ReconstructMessage(
			row.MessageID,
			row.TicketID,
			row.Content,
			role,
			row.SenderName,
			biztime.FromUnixMilli(row.Timestamp),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct message %s: %w", row.MessageID, err)
		}
		msgs = append(msgs, msg)
	}

	var attachments []string
	if len(model.Attachments) > 0 {
		if err := json.Unmarshal(model.Attachments, &attachments); err != nil {
			return nil, fmt.Errorf("failed to decode attachments: %w", err)
		}
	}

	t, err := ticket.ReconstructTicket(
		model.TicketID,
		model.Title,
		model.Description,
		vo.TicketStatus(model.Status),
		vo.Priority(model.Priority),
		ticket.Submitter{
			UserID: model.UserID,
			Name:   model.UserName,
			Email:  model.UserEmail,
		},
		biztime.FromUnixMilli(model.CreatedAt),
		biztime.FromUnixMilli(model.UpdatedAt),
		msgs,
		attachments,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket %s: %w", model.TicketID, err)
	}
	return t, nil
}
