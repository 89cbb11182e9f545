package session

import (
	appsession "github.com/supportdesk/supportdesk/internal/application/session"
)

type SelectLoginTypeRequest struct {
	Role string `json:"role" binding:"required,userrole"`
}

type LoginRequest struct {
	Name  string `json:"name" binding:"required,notblank,max=100"`
	Email string `json:"email" binding:"required,email,max=255"`
	// Role may be omitted after a login type was selected.
	Role string `json:"role" binding:"omitempty,userrole"`
}

func (r *LoginRequest) ToCommand() appsession.LoginCommand {
	return appsession.LoginCommand{
		Name:  r.Name,
		Email: r.Email,
		Role:  r.Role,
	}
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionResponse tells the client which screen to show. Token is echoed so
// clients that do not keep cookies can send it back as X-Session-Token.
type SessionResponse struct {
	View      string        `json:"view"`
	LoginType string        `json:"loginType,omitempty"`
	User      *UserResponse `json:"user,omitempty"`
	Token     string        `json:"token,omitempty"`
}

func toSessionResponse(state appsession.State) *SessionResponse {
	resp := &SessionResponse{
		View:      string(state.View()),
		LoginType: state.LoginType.String(),
		Token:     state.Token,
	}
	if state.User != nil {
		resp.User = &UserResponse{
			ID:    state.User.ID(),
			Name:  state.User.Name(),
			Email: state.User.Email(),
			Role:  state.User.Role().String(),
		}
	}
	return resp
}
