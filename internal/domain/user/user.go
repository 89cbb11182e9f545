// Package user models the identity collected at login. There is no user
// store; a User exists only inside a session.
package user

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/supportdesk/supportdesk/internal/domain/user/valueobjects"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
	"github.com/supportdesk/supportdesk/internal/shared/id"
)

const maxNameLength = 100

// userNamespace scopes name-based user IDs.
var userNamespace = uuid.MustParse("6f1c3a52-8d0e-4b7a-9c1e-2f5d7b9a0c34")

type User struct {
	id    string
	name  string
	email valueobjects.Email
	role  authorization.UserRole
}

// NewUser validates a login identity. The ID is derived from the email so the
// same person sees the same tickets across sessions.
func NewUser(name, email string, role authorization.UserRole) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, fmt.Errorf("name exceeds maximum length of %d characters", maxNameLength)
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	addr, err := valueobjects.NewEmail(email)
	if err != nil {
		return nil, err
	}

	return &User{
		id:    IDForEmail(addr.String()),
		name:  name,
		email: addr,
		role:  role,
	}, nil
}

// IDForEmail returns the stable user ID for a normalized email address.
func IDForEmail(email string) string {
	u := uuid.NewSHA1(userNamespace, []byte(strings.ToLower(strings.TrimSpace(email))))
	return id.FormatWithPrefix(id.PrefixUser, strings.ReplaceAll(u.String(), "-", ""))
}

func (u *User) ID() string {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() string {
	return u.email.String()
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) IsAdmin() bool {
	return u.role.IsAdmin()
}
