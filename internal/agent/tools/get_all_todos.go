package tools

import (
	"context"
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/agent"
	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
)

// GetAllTodosTool lists every todo of the user.
type GetAllTodosTool struct {
	uc  todo.UseCase
	loc *time.Location
}

func NewGetAllTodosTool(uc todo.UseCase, loc *time.Location) agent.Tool {
	return &GetAllTodosTool{uc: uc, loc: loc}
}

func (t *GetAllTodosTool) Name() string {
	return agent.ActionGetAllTodos
}

func (t *GetAllTodosTool) Description() string {
	return "Get all todos of the current user, newest first."
}

func (t *GetAllTodosTool) Parameters() map[string]interface{} {
	return schema(map[string]interface{}{})
}

func (t *GetAllTodosTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	todos, err := t.uc.List(ctx, sc)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"todos": newViews(todos, t.loc),
		"count": len(todos),
	}, nil
}
