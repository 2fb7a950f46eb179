package postgrest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/Sajidddd11/telegramtodo/internal/model"
	repo "github.com/Sajidddd11/telegramtodo/internal/todo/repository"
	"github.com/Sajidddd11/telegramtodo/pkg/log"
)

type implRepository struct {
	client *Client
	l      log.Logger
}

// New creates a PostgREST-backed Repository.
func New(client *Client, l log.Logger) repo.Repository {
	return &implRepository{client: client, l: l}
}

func (r *implRepository) Ping(ctx context.Context) error {
	var rows []todoRow
	return r.client.do(ctx, request{
		method: http.MethodGet,
		table:  tableTodos,
		query:  url.Values{"select": {"id"}, "limit": {"1"}},
	}, &rows)
}

func (r *implRepository) CreateTodo(ctx context.Context, opt repo.CreateTodoOptions) (model.Todo, error) {
	now := opt.Now.UTC()
	row := todoRow{
		ID:          uuid.NewString(),
		UserID:      opt.UserID,
		Title:       opt.Title,
		Description: opt.Description,
		Priority:    opt.Priority,
		Deadline:    opt.Deadline.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var rows []todoRow
	if err := r.client.do(ctx, request{
		method: http.MethodPost,
		table:  tableTodos,
		body:   row,
		prefer: preferRepresentation,
	}, &rows); err != nil {
		r.l.Errorf(ctx, "todo/repository/postgrest.CreateTodo: %v", err)
		return model.Todo{}, repo.ErrFailedToInsert
	}
	if len(rows) == 0 {
		return toModel(row), nil
	}
	return toModel(rows[0]), nil
}

func (r *implRepository) GetTodo(ctx context.Context, opt repo.GetTodoOptions) (model.Todo, error) {
	if !validID(opt.ID) {
		return model.Todo{}, repo.ErrNotFound
	}

	var rows []todoRow
	if err := r.client.do(ctx, request{
		method: http.MethodGet,
		table:  tableTodos,
		query:  ownedBy(opt.UserID, opt.ID, url.Values{"limit": {"1"}}),
	}, &rows); err != nil {
		if isInvalidText(err) {
			return model.Todo{}, repo.ErrNotFound
		}
		r.l.Errorf(ctx, "todo/repository/postgrest.GetTodo: %v", err)
		return model.Todo{}, repo.ErrFailedToGet
	}
	if len(rows) == 0 {
		return model.Todo{}, repo.ErrNotFound
	}
	return toModel(rows[0]), nil
}

func (r *implRepository) ListTodos(ctx context.Context, opt repo.ListTodosOptions) ([]model.Todo, error) {
	query := url.Values{
		"user_id": {eq(opt.UserID)},
		"select":  {"*"},
		"order":   {"created_at.desc"},
	}
	if opt.Query != "" {
		query.Set("or", "("+ilike("title", opt.Query)+","+ilike("description", opt.Query)+")")
	}

	var rows []todoRow
	if err := r.client.do(ctx, request{
		method: http.MethodGet,
		table:  tableTodos,
		query:  query,
	}, &rows); err != nil {
		r.l.Errorf(ctx, "todo/repository/postgrest.ListTodos: %v", err)
		return nil, repo.ErrFailedToList
	}

	todos := make([]model.Todo, 0, len(rows))
	for _, row := range rows {
		todos = append(todos, toModel(row))
	}
	return todos, nil
}

func (r *implRepository) UpdateTodo(ctx context.Context, opt repo.UpdateTodoOptions) (model.Todo, error) {
	if !validID(opt.ID) {
		return model.Todo{}, repo.ErrNotFound
	}

	patch := todoPatch{
		Title:       opt.Title,
		Description: opt.Description,
		IsCompleted: opt.Completed,
		Priority:    opt.Priority,
		UpdatedAt:   opt.Now.UTC(),
	}
	if opt.Deadline != nil {
		d := opt.Deadline.UTC()
		patch.Deadline = &d
	}

	var rows []todoRow
	if err := r.client.do(ctx, request{
		method: http.MethodPatch,
		table:  tableTodos,
		query:  ownedBy(opt.UserID, opt.ID, nil),
		body:   patch,
		prefer: preferRepresentation,
	}, &rows); err != nil {
		if isInvalidText(err) {
			return model.Todo{}, repo.ErrNotFound
		}
		r.l.Errorf(ctx, "todo/repository/postgrest.UpdateTodo: %v", err)
		return model.Todo{}, repo.ErrFailedToUpdate
	}
	if len(rows) == 0 {
		return model.Todo{}, repo.ErrNotFound
	}
	return toModel(rows[0]), nil
}

func (r *implRepository) DeleteTodo(ctx context.Context, opt repo.DeleteTodoOptions) error {
	if !validID(opt.ID) {
		return repo.ErrNotFound
	}

	var rows []todoRow
	if err := r.client.do(ctx, request{
		method: http.MethodDelete,
		table:  tableTodos,
		query:  ownedBy(opt.UserID, opt.ID, nil),
		prefer: preferRepresentation,
	}, &rows); err != nil {
		if isInvalidText(err) {
			return repo.ErrNotFound
		}
		r.l.Errorf(ctx, "todo/repository/postgrest.DeleteTodo: %v", err)
		return repo.ErrFailedToDelete
	}
	if len(rows) == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *implRepository) LinkTelegramChat(ctx context.Context, chatID int64, userID string) error {
	if err := r.client.do(ctx, request{
		method: http.MethodPost,
		table:  tableTelegramUsers,
		query:  url.Values{"on_conflict": {"chat_id"}},
		body:   telegramUserRow{ChatID: chatID, UserID: userID},
		prefer: preferUpsert,
	}, nil); err != nil {
		r.l.Errorf(ctx, "todo/repository/postgrest.LinkTelegramChat: %v", err)
		return repo.ErrFailedToInsert
	}
	return nil
}

func (r *implRepository) GetLinkedUser(ctx context.Context, chatID int64) (string, error) {
	var rows []telegramUserRow
	if err := r.client.do(ctx, request{
		method: http.MethodGet,
		table:  tableTelegramUsers,
		query:  url.Values{"chat_id": {eq(strconv.FormatInt(chatID, 10))}, "limit": {"1"}},
	}, &rows); err != nil {
		r.l.Errorf(ctx, "todo/repository/postgrest.GetLinkedUser: %v", err)
		return "", repo.ErrFailedToGet
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].UserID, nil
}

// validID reports whether id can name a row. The id column is a uuid, and
// anything else would be rejected by the database.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ownedBy scopes a query to one todo of one user.
func ownedBy(userID, id string, extra url.Values) url.Values {
	q := url.Values{
		"id":      {eq(id)},
		"user_id": {eq(userID)},
	}
	for k, v := range extra {
		q[k] = v
	}
	return q
}

func toModel(row todoRow) model.Todo {
	return model.Todo{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Description: row.Description,
		Completed:   row.IsCompleted,
		Priority:    row.Priority,
		Deadline:    row.Deadline.UTC(),
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}
