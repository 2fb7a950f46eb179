package tools

import (
	"context"
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/agent"
	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
)

// UpdateTodoTool changes the provided fields of one todo.
type UpdateTodoTool struct {
	uc  todo.UseCase
	loc *time.Location
}

func NewUpdateTodoTool(uc todo.UseCase, loc *time.Location) agent.Tool {
	return &UpdateTodoTool{uc: uc, loc: loc}
}

func (t *UpdateTodoTool) Name() string {
	return agent.ActionUpdateTodo
}

func (t *UpdateTodoTool) TargetParam() string {
	return agent.ParamTodoID
}

func (t *UpdateTodoTool) Description() string {
	return "Update an existing todo. Only the fields given are changed. todoId must come from getAllTodos or searchTodos."
}

func (t *UpdateTodoTool) Parameters() map[string]interface{} {
	return schema(map[string]interface{}{
		agent.ParamTodoID: prop("string", "Id of the todo to change"),
		"title":           prop("string", "New title"),
		"description":     prop("string", "New description"),
		"is_completed":    prop("boolean", "Completion flag"),
		"priority":        prop("integer", "1-10; >8 High, 5-8 Medium, <5 Low"),
		"deadline":        prop("string", "New deadline"),
	}, agent.ParamTodoID)
}

func (t *UpdateTodoTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	id, _ := stringParam(params, agent.ParamTodoID)

	completed, err := boolParam(params, "is_completed")
	if err != nil {
		return nil, err
	}
	if completed == nil {
		if completed, err = boolParam(params, "completed"); err != nil {
			return nil, err
		}
	}

	updated, err := t.uc.Update(ctx, sc, todo.UpdateInput{
		ID:          id,
		Title:       optionalString(params, "title"),
		Description: optionalString(params, "description"),
		Completed:   completed,
		Priority:    intParam(params, "priority"),
		Deadline:    optionalString(params, "deadline"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"todo": newView(updated, t.loc)}, nil
}
