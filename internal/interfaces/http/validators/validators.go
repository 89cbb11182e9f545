// Package validators installs the desk's binding tags on gin's validator.
package validators

import (
	vo "github.com/supportdesk/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
	"github.com/supportdesk/supportdesk/internal/shared/validation"
)

// Tags maps each custom binding tag to its check.
func Tags() map[string]validation.StringCheck {
	return map[string]validation.StringCheck{
		"ticketstatus":   vo.IsValidTicketStatus,
		"ticketpriority": vo.IsValidPriority,
		"userrole": func(s string) bool {
			return authorization.UserRole(s).IsValid()
		},
	}
}

// Register installs the tags once per process.
func Register() error {
	return validation.RegisterGinValidators(Tags())
}
