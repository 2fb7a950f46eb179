package repository

import "time"

// CreateTodoOptions holds an already-normalized todo to insert.
type CreateTodoOptions struct {
	UserID      string
	Title       string
	Description string
	Priority    int
	Deadline    time.Time
	Now         time.Time
}

type GetTodoOptions struct {
	UserID string
	ID     string
}

// ListTodosOptions lists one user's todos, newest first.
type ListTodosOptions struct {
	UserID string
	// Query, when set, keeps todos whose title or description contains it,
	// ignoring case.
	Query string
}

// UpdateTodoOptions holds a partial update. Nil fields are left untouched.
type UpdateTodoOptions struct {
	UserID      string
	ID          string
	Title       *string
	Description *string
	Completed   *bool
	Priority    *int
	Deadline    *time.Time
	Now         time.Time
}

type DeleteTodoOptions struct {
	UserID string
	ID     string
}
