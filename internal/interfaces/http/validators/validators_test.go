package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportdesk/supportdesk/internal/shared/validation"
)

type sample struct {
	Status   string `json:"status" validate:"omitempty,ticketstatus"`
	Priority string `json:"priority" validate:"omitempty,ticketpriority"`
	Role     string `json:"role" validate:"omitempty,userrole"`
}

func TestTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, validation.Register(v, Tags()))

	tests := []struct {
		name  string
		input sample
		valid bool
	}{
		{name: "all valid", input: sample{Status: "in-progress", Priority: "high", Role: "admin"}, valid: true},
		{name: "empty passes", input: sample{}, valid: true},
		{name: "unknown status", input: sample{Status: "closed"}, valid: false},
		{name: "unknown priority", input: sample{Priority: "urgent"}, valid: false},
		{name: "unknown role", input: sample{Role: "agent"}, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	assert.NoError(t, Register())
	assert.NoError(t, Register(), "second call is a no-op")
}
