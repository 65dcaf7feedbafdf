package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/autoshop/console/internal/kv"
	"github.com/autoshop/console/internal/models"
	"github.com/autoshop/console/internal/store"
)

// testEnv is a fully wired router over memory-backed stores plus an
// established admin session.
type testEnv struct {
	router     http.Handler
	token      string
	users      *store.UserStore
	customers  *store.CustomerStore
	receptions *store.ReceptionStore
	tasks      *store.TaskStore
	messages   *store.MessageStore
	auth       *store.AuthStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	backend := kv.NewMemory()
	log := zap.NewNop()

	users, err := store.NewUserStore(ctx, backend, log)
	require.NoError(t, err)
	auth, err := store.NewAuthStore(ctx, backend, users, log)
	require.NoError(t, err)
	customers, err := store.NewCustomerStore(ctx, backend, log)
	require.NoError(t, err)
	receptions, err := store.NewReceptionStore(ctx, backend, log)
	require.NoError(t, err)
	tasks, err := store.NewTaskStore(ctx, backend, log)
	require.NoError(t, err)
	messages, err := store.NewMessageStore(ctx, backend, log)
	require.NoError(t, err)

	router := NewRouter(Handlers{
		Auth:       &AuthHandler{Auth: auth},
		Customers:  &CustomerHandler{Customers: customers},
		Users:      &UserHandler{Users: users},
		Receptions: &ReceptionHandler{Receptions: receptions, Customers: customers},
		Tasks:      &TaskHandler{Tasks: tasks},
		Messages:   &MessageHandler{Messages: messages},
	}, auth, log)

	env := &testEnv{
		router:     router,
		users:      users,
		customers:  customers,
		receptions: receptions,
		tasks:      tasks,
		messages:   messages,
		auth:       auth,
	}

	// Establish the admin session most tests run under.
	rec := env.do(t, http.MethodPost, "/api/login",
		map[string]string{"username": "admin", "password": "x"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var session models.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	env.token = session.Token
	return env
}

// do runs one request through the router. A nil body sends no payload; a
// non-empty token goes into the Authorization header.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// authed runs a request under the established admin session.
func (e *testEnv) authed(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	return e.do(t, method, path, body, e.token)
}

func toCustomerInput(name, phone string) store.CustomerInput {
	return store.CustomerInput{Name: name, Phone: phone}
}

func toMessageInput(from, to string) store.MessageInput {
	return store.MessageInput{From: from, To: to, Subject: "s", Content: "c"}
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
