package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsession "github.com/supportdesk/supportdesk/internal/application/session"
	"github.com/supportdesk/supportdesk/internal/domain/user"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
	"github.com/supportdesk/supportdesk/internal/shared/config"
	"github.com/supportdesk/supportdesk/internal/shared/constants"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResolver struct {
	sessions map[string]appsession.State
	err      error
	gotToken string
}

func (s *stubResolver) Resolve(_ context.Context, token string) (appsession.State, error) {
	s.gotToken = token
	if s.err != nil {
		return appsession.State{}, s.err
	}
	return s.sessions[token], nil
}

func mustUser(t *testing.T, name, email string, role authorization.UserRole) *user.User {
	t.Helper()
	u, err := user.NewUser(name, email, role)
	require.NoError(t, err)
	return u
}

func newSessionRouter(resolver SessionResolver, guard func(m *SessionMiddleware) gin.HandlerFunc) *gin.Engine {
	m := NewSessionMiddleware(resolver, config.SessionConfig{CookieName: "session_token"}, logger.NewDiscardLogger())
	r := gin.New()
	handlers := []gin.HandlerFunc{m.LoadSession()}
	if guard != nil {
		handlers = append(handlers, guard(m))
	}
	handlers = append(handlers, func(c *gin.Context) {
		state := CurrentSession(c)
		c.String(http.StatusOK, string(state.View()))
	})
	r.GET("/probe", handlers...)
	return r
}

func TestLoadSession_TokenSources(t *testing.T) {
	john := mustUser(t, "John Doe", "john@example.com", authorization.RoleUser)
	resolver := &stubResolver{sessions: map[string]appsession.State{
		"ses_header": {Token: "ses_header", User: john},
		"ses_cookie": {Token: "ses_cookie", LoginType: authorization.RoleAdmin},
	}}
	r := newSessionRouter(resolver, nil)

	tests := []struct {
		name      string
		prepare   func(req *http.Request)
		wantToken string
		wantView  string
	}{
		{
			name:      "header wins",
			prepare:   func(req *http.Request) { req.Header.Set(constants.HeaderSessionToken, "ses_header") },
			wantToken: "ses_header",
			wantView:  string(appsession.ViewUserDashboard),
		},
		{
			name: "cookie fallback",
			prepare: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: "session_token", Value: "ses_cookie"})
			},
			wantToken: "ses_cookie",
			wantView:  string(appsession.ViewAdminLogin),
		},
		{
			name:      "anonymous",
			prepare:   func(*http.Request) {},
			wantToken: "",
			wantView:  string(appsession.ViewLanding),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantView, w.Body.String())
			assert.Equal(t, tt.wantToken, resolver.gotToken)
		})
	}
}

func TestLoadSession_ResolveError(t *testing.T) {
	r := newSessionRouter(&stubResolver{err: fmt.Errorf("store down")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(constants.HeaderSessionToken, "ses_x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSessionGuards(t *testing.T) {
	john := mustUser(t, "John Doe", "john@example.com", authorization.RoleUser)
	admin := mustUser(t, "Support Admin", "admin@example.com", authorization.RoleAdmin)
	resolver := &stubResolver{sessions: map[string]appsession.State{
		"ses_user":  {Token: "ses_user", User: john},
		"ses_admin": {Token: "ses_admin", User: admin},
	}}

	requireIdentity := func(m *SessionMiddleware) gin.HandlerFunc { return m.RequireIdentity() }
	requireAdmin := func(m *SessionMiddleware) gin.HandlerFunc { return m.RequireAdmin() }

	tests := []struct {
		name     string
		guard    func(m *SessionMiddleware) gin.HandlerFunc
		token    string
		wantCode int
	}{
		{name: "identity anonymous", guard: requireIdentity, token: "", wantCode: http.StatusUnauthorized},
		{name: "identity user", guard: requireIdentity, token: "ses_user", wantCode: http.StatusOK},
		{name: "identity admin", guard: requireIdentity, token: "ses_admin", wantCode: http.StatusOK},
		{name: "admin anonymous", guard: requireAdmin, token: "", wantCode: http.StatusUnauthorized},
		{name: "admin as user", guard: requireAdmin, token: "ses_user", wantCode: http.StatusForbidden},
		{name: "admin as admin", guard: requireAdmin, token: "ses_admin", wantCode: http.StatusOK},
		{name: "expired token", guard: requireIdentity, token: "ses_gone", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newSessionRouter(resolver, tt.guard)

			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.token != "" {
				req.Header.Set(constants.HeaderSessionToken, tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestSetSession_ContextKeys(t *testing.T) {
	john := mustUser(t, "John Doe", "john@example.com", authorization.RoleUser)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	SetSession(c, appsession.State{Token: "ses_1", User: john})

	assert.Equal(t, john.ID(), c.GetString(constants.ContextKeyUserID))
	assert.Equal(t, "user", c.GetString(constants.ContextKeyUserRole))
	assert.Equal(t, "ses_1", CurrentSession(c).Token)
}
