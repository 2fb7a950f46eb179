package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
	repo "github.com/Sajidddd11/telegramtodo/internal/todo/repository"
)

// Detail retrieves one of the user's todos. Returns ErrNotFound for foreign or unknown ids.
func (uc *implUseCase) Detail(ctx context.Context, sc model.Scope, id string) (model.Todo, error) {
	if strings.TrimSpace(id) == "" {
		return model.Todo{}, todo.ErrIDRequired
	}
	t, err := uc.repo.GetTodo(ctx, repo.GetTodoOptions{UserID: sc.UserID, ID: id})
	if err != nil {
		return model.Todo{}, mapRepoError(err)
	}
	return t, nil
}

// Update applies the provided fields only.
func (uc *implUseCase) Update(ctx context.Context, sc model.Scope, input todo.UpdateInput) (model.Todo, error) {
	if strings.TrimSpace(input.ID) == "" {
		return model.Todo{}, todo.ErrIDRequired
	}
	if !input.HasChanges() {
		return model.Todo{}, todo.ErrNothingToUpdate
	}

	now := uc.now().UTC()
	opt := repo.UpdateTodoOptions{
		UserID:      sc.UserID,
		ID:          input.ID,
		Description: input.Description,
		Completed:   input.Completed,
		Now:         now,
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return model.Todo{}, todo.ErrTitleRequired
		}
		opt.Title = &title
	}
	if input.Priority != nil {
		p := normalizePriority(input.Priority)
		opt.Priority = &p
	}
	if input.Deadline != nil {
		d, err := uc.normalizeDeadline(*input.Deadline, now)
		if err != nil {
			return model.Todo{}, err
		}
		opt.Deadline = &d
	}

	t, err := uc.repo.UpdateTodo(ctx, opt)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			uc.l.Errorf(ctx, "uc.Update UpdateTodo: %v", err)
		}
		return model.Todo{}, mapRepoError(err)
	}
	return t, nil
}

// Delete removes one of the user's todos and returns it as it was before deletion.
func (uc *implUseCase) Delete(ctx context.Context, sc model.Scope, id string) (model.Todo, error) {
	existing, err := uc.Detail(ctx, sc, id)
	if err != nil {
		return model.Todo{}, err
	}

	if err := uc.repo.DeleteTodo(ctx, repo.DeleteTodoOptions{UserID: sc.UserID, ID: id}); err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			uc.l.Errorf(ctx, "uc.Delete DeleteTodo: %v", err)
		}
		return model.Todo{}, mapRepoError(err)
	}
	return existing, nil
}
