package seeds

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/supportdesk/supportdesk/internal/domain/user"
	"github.com/supportdesk/supportdesk/internal/infrastructure/repository"
	"github.com/supportdesk/supportdesk/internal/shared/id"
)

func TestLoadTickets_EmbeddedSample(t *testing.T) {
	tickets, err := LoadTickets("")
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	john := tickets[0]
	assert.Equal(t, "Unable to reset password", john.Title())
	assert.Equal(t, vo.StatusOpen, john.Status())
	assert.Equal(t, vo.PriorityHigh, john.Priority())
	assert.Equal(t, user.IDForEmail("john@example.com"), john.UserID())
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), john.CreatedAt())
	assert.Equal(t, 1, john.MessageCount())
	assert.NoError(t, id.ValidatePrefix(john.ID(), id.PrefixTicket))

	jane := tickets[1]
	assert.Equal(t, "Billing discrepancy", jane.Title())
	assert.Equal(t, vo.StatusInProgress, jane.Status())
	assert.Equal(t, time.Date(2024, 1, 15, 9, 15, 0, 0, time.UTC), jane.UpdatedAt())

	msgs := jane.Messages()
	require.Len(t, msgs, 2)
	assert.False(t, msgs[0].IsFromAdmin())
	assert.True(t, msgs[1].IsFromAdmin())
	assert.Equal(t, "Support Agent", msgs[1].SenderName())
	for _, m := range msgs {
		assert.Equal(t, jane.ID(), m.TicketID())
	}
}

func TestLoadTickets_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := `
tickets:
  - title: Custom
    description: From a file
    status: resolved
    user_name: Sam
    user_email: SAM@example.com
    created_at: "2024-02-01T08:00:00Z"
    updated_at: "2024-02-01T08:00:00Z"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	tickets, err := LoadTickets(path)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, vo.PriorityMedium, tickets[0].Priority(), "priority defaults to medium")
	assert.Equal(t, "sam@example.com", tickets[0].Submitter().Email)
	assert.False(t, tickets[0].CanReply())
}

func TestParseTickets_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "not yaml", data: "tickets: [", wantErr: "failed to parse seed data"},
		{
			name: "bad status",
			data: strings.Join([]string{
				"tickets:",
				"  - title: X",
				"    status: closed",
				"    user_email: a@example.com",
				`    created_at: "2024-01-01T00:00:00Z"`,
				`    updated_at: "2024-01-01T00:00:00Z"`,
			}, "\n"),
			wantErr: "seed ticket 0",
		},
		{
			name: "bad timestamp",
			data: strings.Join([]string{
				"tickets:",
				"  - title: X",
				"    status: open",
				"    user_email: a@example.com",
				"    created_at: yesterday",
				`    updated_at: "2024-01-01T00:00:00Z"`,
			}, "\n"),
			wantErr: "invalid timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTickets([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSeedTickets_KeepsDisplayOrder(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryTicketRepository()

	tickets, err := LoadTickets("")
	require.NoError(t, err)
	require.NoError(t, SeedTickets(ctx, repo, tickets))

	stored, err := repo.List(ctx, ticket.TicketFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Unable to reset password", stored[0].Title())
	assert.Equal(t, "Billing discrepancy", stored[1].Title())
}
