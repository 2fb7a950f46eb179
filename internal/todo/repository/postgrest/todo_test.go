package postgrest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "github.com/Sajidddd11/telegramtodo/internal/todo/repository"
	"github.com/Sajidddd11/telegramtodo/pkg/log"
)

const todoID = "3f2b8c1e-7d4a-4b6e-9a51-0c2d8e4f6a10"

func newTestRepo(t *testing.T, h http.HandlerFunc) repo.Repository {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(NewClient(srv.URL+"/rest/v1/", "anon-key"), log.NewNop())
}

func TestCreateTodo_SendsHeadersAndBody(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	r := newTestRepo(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/rest/v1/todos", req.URL.Path)
		assert.Equal(t, "anon-key", req.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", req.Header.Get("Authorization"))
		assert.Equal(t, preferRepresentation, req.Header.Get("Prefer"))

		raw, _ := io.ReadAll(req.Body)
		var row todoRow
		require.NoError(t, json.Unmarshal(raw, &row))
		assert.Equal(t, "u1", row.UserID)
		assert.Equal(t, "Call mom", row.Title)
		assert.NotEmpty(t, row.ID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode([]todoRow{row})
	})

	got, err := r.CreateTodo(context.Background(), repo.CreateTodoOptions{
		UserID:   "u1",
		Title:    "Call mom",
		Priority: 3,
		Deadline: now.AddDate(0, 0, 1),
		Now:      now,
	})
	require.NoError(t, err)
	assert.Equal(t, "Call mom", got.Title)
	assert.True(t, got.CreatedAt.Equal(now))
}

func TestGetTodo_ScopesByUser(t *testing.T) {
	r := newTestRepo(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "eq."+todoID, req.URL.Query().Get("id"))
		assert.Equal(t, "eq.u2", req.URL.Query().Get("user_id"))
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := r.GetTodo(context.Background(), repo.GetTodoOptions{UserID: "u2", ID: todoID})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestListTodos(t *testing.T) {
	r := newTestRepo(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "created_at.desc", req.URL.Query().Get("order"))
		_, _ = w.Write([]byte(`[
			{"id":"b","user_id":"u1","title":"second","priority":5,"deadline":"2024-05-03T00:00:00Z","created_at":"2024-05-02T00:00:00Z","updated_at":"2024-05-02T00:00:00Z"},
			{"id":"a","user_id":"u1","title":"first","is_completed":true,"priority":9,"deadline":"2024-05-02T00:00:00+06:00","created_at":"2024-05-01T00:00:00Z","updated_at":"2024-05-01T00:00:00Z"}
		]`))
	})

	todos, err := r.ListTodos(context.Background(), repo.ListTodosOptions{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "b", todos[0].ID)
	assert.True(t, todos[1].Completed)
	assert.Equal(t, time.UTC, todos[1].Deadline.Location())
	assert.Equal(t, 18, todos[1].Deadline.Hour())
}

func TestUpdateAndDelete_NotFound(t *testing.T) {
	r := newTestRepo(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	ctx := context.Background()

	title := "x"
	_, err := r.UpdateTodo(ctx, repo.UpdateTodoOptions{UserID: "u1", ID: todoID, Title: &title})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	err = r.DeleteTodo(ctx, repo.DeleteTodoOptions{UserID: "u1", ID: todoID})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestMalformedID_IsNotFound(t *testing.T) {
	var calls int
	r := newTestRepo(t, func(w http.ResponseWriter, req *http.Request) {
		calls++
		_, _ = w.Write([]byte(`[]`))
	})
	ctx := context.Background()

	_, err := r.GetTodo(ctx, repo.GetTodoOptions{UserID: "u1", ID: "buy-milk"})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	title := "x"
	_, err = r.UpdateTodo(ctx, repo.UpdateTodoOptions{UserID: "u1", ID: "1", Title: &title})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	err = r.DeleteTodo(ctx, repo.DeleteTodoOptions{UserID: "u1", ID: ""})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	assert.Zero(t, calls)
}

func TestInvalidTextRepresentation_IsNotFound(t *testing.T) {
	r := newTestRepo(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"22P02","details":null,"hint":null,"message":"invalid input syntax for type uuid"}`))
	})
	ctx := context.Background()

	_, err := r.GetTodo(ctx, repo.GetTodoOptions{UserID: "u1", ID: todoID})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	done := true
	_, err = r.UpdateTodo(ctx, repo.UpdateTodoOptions{UserID: "u1", ID: todoID, Completed: &done})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	err = r.DeleteTodo(ctx, repo.DeleteTodoOptions{UserID: "u1", ID: todoID})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestOtherBadRequest_IsFailure(t *testing.T) {
	r := newTestRepo(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"PGRST100","message":"failed to parse filter"}`))
	})

	_, err := r.GetTodo(context.Background(), repo.GetTodoOptions{UserID: "u1", ID: todoID})
	assert.ErrorIs(t, err, repo.ErrFailedToGet)
}

func TestListTodos_Query(t *testing.T) {
	r := newTestRepo(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "eq.u1", req.URL.Query().Get("user_id"))
		assert.Equal(t, `(title.ilike."*milk*",description.ilike."*milk*")`, req.URL.Query().Get("or"))
		_, _ = w.Write([]byte(`[]`))
	})

	todos, err := r.ListTodos(context.Background(), repo.ListTodosOptions{UserID: "u1", Query: "milk"})
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestIlike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"milk", `title.ilike."*milk*"`},
		{"50%", `title.ilike."*50\\%*"`},
		{"a_b", `title.ilike."*a\\_b*"`},
		{"call (mom), now", `title.ilike."*call (mom), now*"`},
		{`say "hi"`, `title.ilike."*say \"hi\"*"`},
		{"x*y", `title.ilike."*xy*"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ilike("title", tt.in), tt.in)
	}
}

func TestUpdateTodo_OmitsUnsetFields(t *testing.T) {
	r := newTestRepo(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPatch, req.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Contains(t, body, "is_completed")
		assert.NotContains(t, body, "title")
		assert.NotContains(t, body, "deadline")
		_, _ = w.Write([]byte(`[{"id":"` + todoID + `","user_id":"u1","title":"keep","is_completed":true}]`))
	})

	done := true
	got, err := r.UpdateTodo(context.Background(), repo.UpdateTodoOptions{UserID: "u1", ID: todoID, Completed: &done})
	require.NoError(t, err)
	assert.Equal(t, "keep", got.Title)
	assert.True(t, got.Completed)
}

func TestServerError(t *testing.T) {
	r := newTestRepo(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	})

	_, err := r.ListTodos(context.Background(), repo.ListTodosOptions{UserID: "u1"})
	assert.ErrorIs(t, err, repo.ErrFailedToList)
}

func TestGetLinkedUser(t *testing.T) {
	r := newTestRepo(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/rest/v1/telegram_users", req.URL.Path)
		if req.URL.Query().Get("chat_id") == "eq.42" {
			_, _ = w.Write([]byte(`[{"chat_id":42,"user_id":"u1"}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})
	ctx := context.Background()

	uid, err := r.GetLinkedUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)

	uid, err = r.GetLinkedUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, uid)
}
