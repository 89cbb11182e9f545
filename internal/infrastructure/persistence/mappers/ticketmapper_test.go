package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/supportdesk/supportdesk/internal/infrastructure/persistence/models"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
)

var (
	testCreated = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	testUpdated = time.Date(2024, 1, 15, 10, 5, 0, 250_000_000, time.UTC)
	testSender  = ticket.Submitter{UserID: "usr_john", Name: "John Doe", Email: "john@example.com"}
)

func newTestTicket(t *testing.T, attachments []string) *ticket.Ticket {
	t.Helper()
	msg, err := ticket.ReconstructMessage("msg_1", "tkt_1", "  hello  ", authorization.RoleUser, "John Doe", testUpdated)
	require.NoError(t, err)
	reply, err := ticket.ReconstructMessage("msg_2", "tkt_1", "hi John", authorization.RoleAdmin, "Support", testUpdated)
	require.NoError(t, err)

	tk, err := ticket.ReconstructTicket(
		"tkt_1", "Unable to reset password", "Email never arrives",
		vo.StatusInProgress, vo.PriorityHigh, testSender,
		testCreated, testUpdated,
		[]*ticket.Message{msg, reply},
		attachments,
	)
	require.NoError(t, err)
	return tk
}

func TestTicketMapper_ToModel(t *testing.T) {
	tests := []struct {
		name            string
		attachments     []string
		wantAttachments datatypes.JSON
	}{
		{name: "with attachments", attachments: []string{"screenshot.png", "log.txt"}, wantAttachments: datatypes.JSON(`["screenshot.png","log.txt"]`)},
		{name: "nil attachments", attachments: nil, wantAttachments: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, rows, err := NewTicketMapper().ToModel(newTestTicket(t, tt.attachments))

			require.NoError(t, err)
			assert.Equal(t, "tkt_1", model.TicketID)
			assert.Equal(t, "in-progress", model.Status)
			assert.Equal(t, "high", model.Priority)
			assert.Equal(t, "usr_john", model.UserID)
			assert.Equal(t, testCreated.UnixMilli(), model.CreatedAt)
			assert.Equal(t, testUpdated.UnixMilli(), model.UpdatedAt)
			assert.Equal(t, tt.wantAttachments, model.Attachments)

			require.Len(t, rows, 2)
			assert.Equal(t, 0, rows[0].Position)
			assert.Equal(t, 1, rows[1].Position)
			assert.Equal(t, "  hello  ", rows[0].Content)
			assert.Equal(t, "admin", rows[1].SenderRole)
		})
	}
}

func TestTicketMapper_RoundTrip(t *testing.T) {
	mapper := NewTicketMapper()
	for _, attachments := range [][]string{{"a.png"}, nil} {
		original := newTestTicket(t, attachments)

		model, rows, err := mapper.ToModel(original)
		require.NoError(t, err)
		got, err := mapper.ToDomain(model, rows)
		require.NoError(t, err)

		assert.Equal(t, original.ID(), got.ID())
		assert.Equal(t, original.Status(), got.Status())
		assert.Equal(t, original.Submitter(), got.Submitter())
		assert.True(t, original.CreatedAt().Equal(got.CreatedAt()))
		assert.True(t, original.UpdatedAt().Equal(got.UpdatedAt()))
		assert.Equal(t, original.Attachments(), got.Attachments())
		require.Equal(t, original.MessageCount(), got.MessageCount())
		for i, m := range got.Messages() {
			assert.Equal(t, original.Messages()[i].ID(), m.ID())
			assert.Equal(t, original.Messages()[i].Content(), m.Content())
		}
	}
}

func TestTicketMapper_ToDomain(t *testing.T) {
	mapper := NewTicketMapper()

	t.Run("nil model", func(t *testing.T) {
		got, err := mapper.ToDomain(nil, nil)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("zero timestamps map to zero time", func(t *testing.T) {
		got, err := mapper.ToDomain(&models.TicketModel{
			TicketID: "tkt_1", Title: "T", Status: "open", Priority: "low", UserID: "usr_john",
		}, nil)
		require.NoError(t, err)
		assert.True(t, got.CreatedAt().IsZero())
		assert.True(t, got.UpdatedAt().IsZero())
		assert.Empty(t, got.Attachments())
		assert.Empty(t, got.Messages())
	})

	tests := []struct {
		name     string
		model    models.TicketModel
		messages []models.MessageModel
	}{
		{
			name:  "unknown status",
			model: models.TicketModel{TicketID: "tkt_1", Title: "T", Status: "closed", Priority: "low", UserID: "usr_john"},
		},
		{
			name:  "corrupt attachments",
			model: models.TicketModel{TicketID: "tkt_1", Title: "T", Status: "open", Priority: "low", UserID: "usr_john", Attachments: datatypes.JSON(`{`)},
		},
		{
			name:     "unknown sender role",
			model:    models.TicketModel{TicketID: "tkt_1", Title: "T", Status: "open", Priority: "low", UserID: "usr_john"},
			messages: []models.MessageModel{{MessageID: "msg_1", TicketID: "tkt_1", Content: "x", SenderRole: "bot"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := tt.model
			_, err := mapper.ToDomain(&model, tt.messages)
			assert.Error(t, err)
		})
	}
}
