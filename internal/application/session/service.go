// Package session holds per-client login state: the current identity and the
// pending login-type selection.
package session

import (
	"context"
	"fmt"

	"github.com/supportdesk/supportdesk/internal/domain/user"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
	"github.com/supportdesk/supportdesk/internal/shared/errors"
	"github.com/supportdesk/supportdesk/internal/shared/id"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

// Store keeps session states by token. Implementations must be safe for
// concurrent use and must not share State values with callers.
type Store interface {
	Get(ctx context.Context, token string) (State, bool, error)
	Put(ctx context.Context, state State) error
	Delete(ctx context.Context, token string) error
}

type LoginCommand struct {
	Name  string
	Email string
	// Role may be empty when a login type was selected beforehand.
	Role string
}

type Service struct {
	store  Store
	logger logger.Interface
}

func NewService(store Store, logger logger.Interface) *Service {
	return &Service{store: store, logger: logger}
}

// Resolve loads the session for token. A missing or expired token yields an
// anonymous, unsaved state.
func (s *Service) Resolve(ctx context.Context, token string) (State, error) {
	if token == "" {
		return State{}, nil
	}
	state, ok, err := s.store.Get(ctx, token)
	if err != nil {
		return State{}, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return State{}, nil
	}
	return state, nil
}

// SelectLoginType records which login form the client chose.
func (s *Service) SelectLoginType(ctx context.Context, state State, role string) (State, error) {
	r, err := authorization.ParseUserRole(role)
	if err != nil {
		return state, errors.NewValidationError("invalid login type", err.Error())
	}
	if state.IsAuthenticated() {
		return state, errors.NewBadRequestError("already logged in")
	}

	state.LoginType = r
	return s.save(ctx, state)
}

// ClearLoginType is the "back" action from a login form.
func (s *Service) ClearLoginType(ctx context.Context, state State) (State, error) {
	if state.Token == "" {
		return state, nil
	}
	state.LoginType = ""
	return s.save(ctx, state)
}

// Login sets the identity and clears the pending login type. The role comes
// from the command or, when omitted, from the selected login type.
func (s *Service) Login(ctx context.Context, state State, cmd LoginCommand) (State, error) {
	roleName := cmd.Role
	if roleName == "" {
		roleName = state.LoginType.String()
	}
	if roleName == "" {
		return state, errors.NewValidationError("role is required when no login type is selected")
	}
	role, err := authorization.ParseUserRole(roleName)
	if err != nil {
		return state, errors.NewValidationError("invalid role", err.Error())
	}

	u, err := user.NewUser(cmd.Name, cmd.Email, role)
	if err != nil {
		return state, errors.NewValidationError(err.Error())
	}

	state.User = u
	state.LoginType = ""
	state, err = s.save(ctx, state)
	if err != nil {
		return state, err
	}

	s.logger.Infow("user logged in", "user_id", u.ID(), "role", role)
	return state, nil
}

// Logout drops the identity and login type by discarding the session.
func (s *Service) Logout(ctx context.Context, state State) (State, error) {
	if state.Token != "" {
		if err := s.store.Delete(ctx, state.Token); err != nil {
			return state, fmt.Errorf("failed to delete session: %w", err)
		}
	}
	if state.User != nil {
		s.logger.Infow("user logged out", "user_id", state.User.ID())
	}
	return State{}, nil
}

func (s *Service) save(ctx context.Context, state State) (State, error) {
	if state.Token == "" {
		token, err := id.NewSessionToken()
		if err != nil {
			return state, fmt.Errorf("failed to generate session token: %w", err)
		}
		state.Token = token
	}
	if err := s.store.Put(ctx, state); err != nil {
		return state, fmt.Errorf("failed to save session: %w", err)
	}
	return state, nil
}
