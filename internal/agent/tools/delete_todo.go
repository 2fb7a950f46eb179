package tools

import (
	"context"

	"github.com/Sajidddd11/telegramtodo/internal/agent"
	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
)

// DeleteTodoTool removes one todo.
type DeleteTodoTool struct {
	uc todo.UseCase
}

func NewDeleteTodoTool(uc todo.UseCase) agent.Tool {
	return &DeleteTodoTool{uc: uc}
}

func (t *DeleteTodoTool) Name() string {
	return agent.ActionDeleteTodo
}

func (t *DeleteTodoTool) TargetParam() string {
	return agent.ParamTodoID
}

func (t *DeleteTodoTool) Description() string {
	return "Delete a todo by id. todoId must come from getAllTodos or searchTodos."
}

func (t *DeleteTodoTool) Parameters() map[string]interface{} {
	return schema(map[string]interface{}{
		agent.ParamTodoID: prop("string", "Id of the todo to delete"),
	}, agent.ParamTodoID)
}

func (t *DeleteTodoTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	id, _ := stringParam(params, agent.ParamTodoID)

	deleted, err := t.uc.Delete(ctx, sc, id)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"deleted": map[string]string{"id": deleted.ID, "title": deleted.Title},
	}, nil
}
