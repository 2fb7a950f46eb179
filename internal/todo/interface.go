package todo

import (
	"context"

	"github.com/Sajidddd11/telegramtodo/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	List(ctx context.Context, sc model.Scope) ([]model.Todo, error)
	Search(ctx context.Context, sc model.Scope, input SearchInput) ([]model.Todo, error)
	Create(ctx context.Context, sc model.Scope, input CreateInput) (model.Todo, error)
	Detail(ctx context.Context, sc model.Scope, id string) (model.Todo, error)
	Update(ctx context.Context, sc model.Scope, input UpdateInput) (model.Todo, error)
	Delete(ctx context.Context, sc model.Scope, id string) (model.Todo, error)

	// Telegram account linking
	LinkTelegramChat(ctx context.Context, sc model.Scope, chatID int64) error
	ResolveTelegramUser(ctx context.Context, chatID int64) (string, error)
}
