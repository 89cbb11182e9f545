package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
)

type upperRenderer struct{}

func (upperRenderer) Render(s string) string { return "<p>" + strings.ToUpper(s) + "</p>" }

func buildTicket(t *testing.T, status vo.TicketStatus) *ticket.Ticket {
	t.Helper()
	at := time.Date(2024, 1, 14, 14, 20, 0, 0, time.UTC)
	msg, err := ticket.ReconstructMessage("msg_1", "tkt_2", "charged twice", authorization.RoleUser, "Jane Smith", at)
	require.NoError(t, err)
	tk, err := ticket.ReconstructTicket("tkt_2", "Billing discrepancy", "Invoice error", status, vo.PriorityMedium,
		ticket.Submitter{UserID: "usr_jane", Name: "Jane Smith", Email: "jane@example.com"},
		at, at.Add(time.Hour), []*ticket.Message{msg}, nil)
	require.NoError(t, err)
	return tk
}

func TestToTicketDTO(t *testing.T) {
	out := ToTicketDTO(buildTicket(t, vo.StatusInProgress), upperRenderer{})

	require.NotNil(t, out)
	assert.Equal(t, "tkt_2", out.ID)
	assert.Equal(t, "in-progress", out.Status)
	assert.Equal(t, "In Progress", out.StatusLabel)
	assert.Equal(t, "2024-01-14T14:20:00.000Z", out.CreatedAt)
	assert.Equal(t, "2024-01-14T15:20:00.000Z", out.UpdatedAt)
	assert.Equal(t, 1, out.MessageCount)
	assert.True(t, out.CanReply)
	require.Len(t, out.Messages, 1)
	assert.Equal(t, "<p>CHARGED TWICE</p>", out.Messages[0].ContentHTML)
	assert.Equal(t, "user", out.Messages[0].SenderRole)
}

func TestToTicketDTO_NilRenderer(t *testing.T) {
	out := ToTicketDTO(buildTicket(t, vo.StatusResolved), nil)

	assert.Empty(t, out.Messages[0].ContentHTML)
	assert.False(t, out.CanReply)
	assert.Nil(t, ToTicketDTO(nil, nil))
}

func TestBuildDashboard(t *testing.T) {
	tickets := []*ticket.Ticket{
		buildTicket(t, vo.StatusOpen),
		buildTicket(t, vo.StatusInProgress),
		buildTicket(t, vo.StatusResolved),
		buildTicket(t, vo.StatusResolved),
	}

	d := BuildDashboard(tickets)

	assert.Equal(t, 4, d.Total)
	assert.Equal(t, 2, d.Open)
	assert.Equal(t, 2, d.Resolved)
	assert.Equal(t, map[string]int{"open": 1, "in-progress": 1, "resolved": 2}, d.ByStatus)
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := BuildDashboard(nil)

	assert.Zero(t, d.Total)
	assert.Equal(t, map[string]int{"open": 0, "in-progress": 0, "resolved": 0}, d.ByStatus)
}
