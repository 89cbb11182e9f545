package session

import (
	"github.com/supportdesk/supportdesk/internal/domain/user"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
)

// View names the screen a client should show for its session.
type View string

const (
	ViewLanding        View = "landing"
	ViewUserLogin      View = "user-login"
	ViewAdminLogin     View = "admin-login"
	ViewUserDashboard  View = "user-dashboard"
	ViewAdminDashboard View = "admin-dashboard"
)

// State is one client's session: who is logged in, and which login form was
// picked before logging in.
type State struct {
	Token     string
	User      *user.User
	LoginType authorization.UserRole
}

func (s State) IsAuthenticated() bool {
	return s.User != nil
}

// View derives the current screen. An identity wins over a pending login type.
func (s State) View() View {
	if s.User != nil {
		if s.User.IsAdmin() {
			return ViewAdminDashboard
		}
		return ViewUserDashboard
	}
	switch s.LoginType {
	case authorization.RoleUser:
		return ViewUserLogin
	case authorization.RoleAdmin:
		return ViewAdminLogin
	default:
		return ViewLanding
	}
}
