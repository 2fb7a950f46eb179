package usecase

import (
	"context"
	"strings"

	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
	repo "github.com/Sajidddd11/telegramtodo/internal/todo/repository"
)

// Create validates and normalizes input, then stores a new todo for the scope's user.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input todo.CreateInput) (model.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Todo{}, todo.ErrTitleRequired
	}

	now := uc.now().UTC()
	deadline, err := uc.normalizeDeadline(input.Deadline, now)
	if err != nil {
		return model.Todo{}, err
	}

	t, err := uc.repo.CreateTodo(ctx, repo.CreateTodoOptions{
		UserID:      sc.UserID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Priority:    normalizePriority(input.Priority),
		Deadline:    deadline,
		Now:         now,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateTodo: %v", err)
		return model.Todo{}, mapRepoError(err)
	}

	uc.l.Infof(ctx, "uc.Create: user=%s todo=%s", sc.UserID, t.ID)
	return t, nil
}
