package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketdto "github.com/supportdesk/supportdesk/internal/application/ticket/dto"
	"github.com/supportdesk/supportdesk/internal/infrastructure/config"
	"github.com/supportdesk/supportdesk/internal/shared/constants"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type listData struct {
	Items []ticketdto.TicketListItemDTO `json:"items"`
	Total int                           `json:"total"`
}

// client keeps one browser's session token between requests.
type client struct {
	t     *testing.T
	h     http.Handler
	token string
}

func (c *client) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(constants.HeaderSessionToken, c.token)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (c *client) data(method, path string, body any, wantCode int, target any) envelope {
	c.t.Helper()
	w, env := c.do(method, path, body)
	require.Equal(c.t, wantCode, w.Code, w.Body.String())
	if target != nil {
		require.NoError(c.t, json.Unmarshal(env.Data, target))
	}
	return env
}

func (c *client) login(name, email, role string) {
	c.t.Helper()
	var sess struct {
		View  string `json:"view"`
		Token string `json:"token"`
	}
	c.data(http.MethodPost, "/session/login-type", map[string]string{"role": role}, http.StatusOK, &sess)
	c.token = sess.Token
	c.data(http.MethodPost, "/session/login", map[string]string{"name": name, "email": email}, http.StatusOK, &sess)
	require.Equal(c.t, sess.Token, c.token, "login keeps the session token")
}

func newTestRouter(t *testing.T, driver string) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testChdir(t, t.TempDir())

	cfg, err := config.Load("test")
	require.NoError(t, err)
	cfg.Store.Driver = driver

	r, err := NewRouter(context.Background(), cfg, logger.NewDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(r.Shutdown)

	r.SetupRoutes()
	return r
}

func TestRouter_DeskFlow(t *testing.T) {
	for _, driver := range []string{"memory", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			r := newTestRouter(t, driver)
			john := &client{t: t, h: r.GetEngine()}
			admin := &client{t: t, h: r.GetEngine()}

			// anonymous visitors land on the role picker and cannot read tickets
			var sess struct {
				View string `json:"view"`
			}
			john.data(http.MethodGet, "/session", nil, http.StatusOK, &sess)
			assert.Equal(t, "landing", sess.View)
			john.data(http.MethodGet, "/tickets", nil, http.StatusUnauthorized, nil)

			john.login("John Doe", "john@example.com", "user")

			var list listData
			john.data(http.MethodGet, "/tickets", nil, http.StatusOK, &list)
			require.Equal(t, 1, list.Total, "john sees only his seeded ticket")
			assert.Equal(t, "Unable to reset password", list.Items[0].Title)

			var created ticketdto.TicketDTO
			john.data(http.MethodPost, "/tickets", map[string]any{
				"title":       "Printer on fire",
				"description": "It is on fire.",
				"priority":    "high",
			}, http.StatusCreated, &created)
			assert.Equal(t, "open", created.Status)
			assert.Equal(t, "John Doe", created.UserName)
			assert.Empty(t, created.Messages)

			john.data(http.MethodGet, "/tickets", nil, http.StatusOK, &list)
			require.Equal(t, 2, list.Total)
			assert.Equal(t, created.ID, list.Items[0].ID, "new tickets are listed first")

			var sent struct {
				Sent       bool                  `json:"sent"`
				SkipReason string                `json:"skipReason"`
				Message    *ticketdto.MessageDTO `json:"message"`
			}
			path := "/tickets/" + created.ID + "/messages"
			john.data(http.MethodPost, path, map[string]string{"content": "   "}, http.StatusOK, &sent)
			assert.False(t, sent.Sent)
			assert.Equal(t, "empty", sent.SkipReason)

			john.data(http.MethodPost, path, map[string]string{"content": " still burning "}, http.StatusOK, &sent)
			require.True(t, sent.Sent)
			assert.Equal(t, " still burning ", sent.Message.Content)
			assert.Equal(t, "user", sent.Message.SenderRole)

			// users are kept out of the admin desk
			john.data(http.MethodGet, "/admin/tickets", nil, http.StatusForbidden, nil)

			admin.login("Support Admin", "admin@example.com", "admin")

			admin.data(http.MethodGet, "/admin/tickets", nil, http.StatusOK, &list)
			assert.Equal(t, 3, list.Total)

			var changed struct {
				Found     bool   `json:"found"`
				Changed   bool   `json:"changed"`
				OldStatus string `json:"oldStatus"`
			}
			statusPath := "/admin/tickets/" + created.ID + "/status"
			admin.data(http.MethodPatch, statusPath, map[string]string{"status": "resolved"}, http.StatusOK, &changed)
			assert.True(t, changed.Found)
			assert.True(t, changed.Changed)
			assert.Equal(t, "open", changed.OldStatus)

			admin.data(http.MethodPatch, statusPath, map[string]string{"status": "resolved"}, http.StatusOK, &changed)
			assert.False(t, changed.Changed, "same status is a no-op")

			admin.data(http.MethodPatch, "/admin/tickets/tkt_missing/status", map[string]string{"status": "open"}, http.StatusOK, &changed)
			assert.False(t, changed.Found, "unknown ticket is a no-op")

			john.data(http.MethodPost, path, map[string]string{"content": "hello?"}, http.StatusOK, &sent)
			assert.False(t, sent.Sent)
			assert.Equal(t, "resolved", sent.SkipReason)

			var dash ticketdto.DashboardDTO
			john.data(http.MethodGet, "/dashboard", nil, http.StatusOK, &dash)
			assert.Equal(t, 2, dash.Total)
			assert.Equal(t, 1, dash.Open)
			assert.Equal(t, 1, dash.Resolved)

			admin.data(http.MethodGet, "/admin/dashboard", nil, http.StatusOK, &dash)
			assert.Equal(t, 3, dash.Total)
			assert.Equal(t, 1, dash.ByStatus["in-progress"])

			env := john.data(http.MethodPost, "/session/logout", nil, http.StatusOK, nil)
			assert.Equal(t, "Logged out", env.Message)
			john.data(http.MethodGet, "/tickets", nil, http.StatusUnauthorized, nil)
		})
	}
}

func TestRouter_UpdateTicketReplacesRecord(t *testing.T) {
	r := newTestRouter(t, "memory")
	john := &client{t: t, h: r.GetEngine()}
	john.login("John Doe", "john@example.com", "user")

	var list listData
	john.data(http.MethodGet, "/tickets", nil, http.StatusOK, &list)
	require.NotEmpty(t, list.Items)

	var record ticketdto.TicketDTO
	john.data(http.MethodGet, "/tickets/"+list.Items[0].ID, nil, http.StatusOK, &record)
	record.Title = "Password reset still broken"
	record.Priority = "low"

	var out struct {
		Updated bool                `json:"updated"`
		Ticket  ticketdto.TicketDTO `json:"ticket"`
	}
	john.data(http.MethodPut, "/tickets/"+record.ID, record, http.StatusOK, &out)
	assert.True(t, out.Updated)
	assert.Equal(t, "Password reset still broken", out.Ticket.Title)
	assert.Equal(t, "low", out.Ticket.Priority)
	assert.Equal(t, record.UpdatedAt, out.Ticket.UpdatedAt, "replace keeps updatedAt as sent")
	assert.Len(t, out.Ticket.Messages, len(record.Messages))

	record.ID = "tkt_unknown"
	record.Messages = nil
	john.data(http.MethodPut, "/tickets/tkt_unknown", record, http.StatusOK, &out)
	assert.False(t, out.Updated)

	record.UserID = "usr_someone_else"
	john.data(http.MethodPut, "/tickets/tkt_unknown", record, http.StatusOK, &out)
	assert.False(t, out.Updated, "unknown ticket is skipped whatever owner it names")

	record.ID = "1"
	john.data(http.MethodPut, "/tickets/1", record, http.StatusOK, &out)
	assert.False(t, out.Updated, "ids from outside the desk match nothing")
}

func TestRouter_MultibyteText(t *testing.T) {
	r := newTestRouter(t, "memory")
	john := &client{t: t, h: r.GetEngine()}
	john.login("John Doe", "john@example.com", "user")

	title := strings.Repeat("é", 150)
	var created ticketdto.TicketDTO
	john.data(http.MethodPost, "/tickets", map[string]any{
		"title":       title,
		"description": strings.Repeat("票", 3000),
	}, http.StatusCreated, &created)
	assert.Equal(t, title, created.Title)

	content := strings.Repeat("票", 2000)
	var sent struct {
		Sent    bool                  `json:"sent"`
		Message *ticketdto.MessageDTO `json:"message"`
	}
	john.data(http.MethodPost, "/tickets/"+created.ID+"/messages", map[string]string{"content": content}, http.StatusOK, &sent)
	require.True(t, sent.Sent)
	assert.Equal(t, content, sent.Message.Content)

	var got ticketdto.TicketDTO
	john.data(http.MethodGet, "/tickets/"+created.ID, nil, http.StatusOK, &got)
	assert.Len(t, got.Messages, 1)
}

func TestRouter_SystemEndpoints(t *testing.T) {
	r := newTestRouter(t, "memory")
	c := &client{t: t, h: r.GetEngine()}

	w, _ := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(constants.HeaderXRequestID))

	w, _ = c.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "supportdesk_http_requests_total")
}

// testChdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
