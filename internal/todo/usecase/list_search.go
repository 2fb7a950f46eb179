package usecase

import (
	"context"
	"strings"

	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
	repo "github.com/Sajidddd11/telegramtodo/internal/todo/repository"
)

// List returns all of the user's todos, newest first.
func (uc *implUseCase) List(ctx context.Context, sc model.Scope) ([]model.Todo, error) {
	todos, err := uc.repo.ListTodos(ctx, repo.ListTodosOptions{UserID: sc.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListTodos: %v", err)
		return nil, mapRepoError(err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

// Search returns the user's todos whose title or description contains the
// query, ignoring case. A blank query matches everything.
func (uc *implUseCase) Search(ctx context.Context, sc model.Scope, input todo.SearchInput) ([]model.Todo, error) {
	q := strings.TrimSpace(input.Query)
	todos, err := uc.repo.ListTodos(ctx, repo.ListTodosOptions{UserID: sc.UserID, Query: q})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Search ListTodos: %v", err)
		return nil, mapRepoError(err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}
