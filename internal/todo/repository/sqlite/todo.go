package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sajidddd11/telegramtodo/internal/model"
	repo "github.com/Sajidddd11/telegramtodo/internal/todo/repository"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (model.Todo, error) {
	var (
		t                               model.Todo
		completed                       int
		deadline, createdAt, updatedAt string
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &completed, &t.Priority,
		&deadline, &createdAt, &updatedAt); err != nil {
		return model.Todo{}, err
	}
	t.Completed = completed != 0

	var err error
	if t.Deadline, err = parseTime(deadline); err != nil {
		return model.Todo{}, fmt.Errorf("parse deadline: %w", err)
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Todo{}, fmt.Errorf("parse created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Todo{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return t, nil
}

// CreateTodo inserts a new row and returns the created entity.
func (r *implRepository) CreateTodo(ctx context.Context, opt repo.CreateTodoOptions) (model.Todo, error) {
	query := `
		INSERT INTO todos (` + todoColumns + `)
		VALUES (?, ?, ?, ?, 0, ?, ?, ?, ?)
		RETURNING ` + todoColumns

	now := formatTime(opt.Now)
	t, err := scanTodo(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), opt.UserID, opt.Title, opt.Description, opt.Priority,
		formatTime(opt.Deadline), now, now,
	))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTodo"), err)
		return model.Todo{}, repo.ErrFailedToInsert
	}
	return t, nil
}

// GetTodo fetches one todo owned by opt.UserID.
func (r *implRepository) GetTodo(ctx context.Context, opt repo.GetTodoOptions) (model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ? AND user_id = ? LIMIT 1`

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, opt.ID, opt.UserID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Todo{}, repo.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetTodo"), err)
		return model.Todo{}, repo.ErrFailedToGet
	}
	return t, nil
}

// ListTodos returns the todos owned by opt.UserID, newest first, narrowed to
// those matching opt.Query when it is set.
func (r *implRepository) ListTodos(ctx context.Context, opt repo.ListTodosOptions) ([]model.Todo, error) {
	where, args := buildListFilter(opt)
	query := `SELECT ` + todoColumns + ` FROM todos WHERE ` + where + ` ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTodos"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListTodos"), err)
			return nil, repo.ErrFailedToList
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListTodos"), err)
		return nil, repo.ErrFailedToList
	}
	return todos, nil
}

// UpdateTodo applies a partial update and returns the updated entity.
func (r *implRepository) UpdateTodo(ctx context.Context, opt repo.UpdateTodoOptions) (model.Todo, error) {
	sets, args := r.buildUpdateQuery(opt)
	query := fmt.Sprintf(`UPDATE todos SET %s WHERE id = ? AND user_id = ? RETURNING %s`, sets, todoColumns)
	args = append(args, opt.ID, opt.UserID)

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Todo{}, repo.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateTodo"), err)
		return model.Todo{}, repo.ErrFailedToUpdate
	}
	return t, nil
}

// DeleteTodo removes a todo owned by opt.UserID.
func (r *implRepository) DeleteTodo(ctx context.Context, opt repo.DeleteTodoOptions) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND user_id = ?`, opt.ID, opt.UserID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteTodo"), err)
		return repo.ErrFailedToDelete
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s rows affected: %v", r.dsn("DeleteTodo"), err)
		return repo.ErrFailedToDelete
	}
	if n == 0 {
		return repo.ErrNotFound
	}
	return nil
}
