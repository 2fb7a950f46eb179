package repository

import (
	"context"

	"github.com/Sajidddd11/telegramtodo/internal/model"
)

// Repository is the composed interface for the todo data store.
type Repository interface {
	TodoRepository
	LinkRepository

	Ping(ctx context.Context) error
}

// TodoRepository defines all data access methods for model.Todo. Every method is
// scoped by UserID; a row owned by someone else is reported as ErrNotFound.
type TodoRepository interface {
	CreateTodo(ctx context.Context, opt CreateTodoOptions) (model.Todo, error)
	GetTodo(ctx context.Context, opt GetTodoOptions) (model.Todo, error)
	ListTodos(ctx context.Context, opt ListTodosOptions) ([]model.Todo, error)
	UpdateTodo(ctx context.Context, opt UpdateTodoOptions) (model.Todo, error)
	DeleteTodo(ctx context.Context, opt DeleteTodoOptions) error
}

// LinkRepository maps Telegram chats to application users.
type LinkRepository interface {
	LinkTelegramChat(ctx context.Context, chatID int64, userID string) error
	// GetLinkedUser returns "" when the chat is not linked.
	GetLinkedUser(ctx context.Context, chatID int64) (string, error)
}
