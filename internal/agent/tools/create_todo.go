package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/agent"
	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
)

// CreateTodoTool adds a todo.
type CreateTodoTool struct {
	uc  todo.UseCase
	loc *time.Location
}

func NewCreateTodoTool(uc todo.UseCase, loc *time.Location) agent.Tool {
	return &CreateTodoTool{uc: uc, loc: loc}
}

func (t *CreateTodoTool) Name() string {
	return agent.ActionCreateTodo
}

func (t *CreateTodoTool) Description() string {
	return "Create a new todo. Missing deadline means one day from now; missing priority means 3 (Low)."
}

func (t *CreateTodoTool) Parameters() map[string]interface{} {
	return schema(map[string]interface{}{
		"title":       prop("string", "Short title of the task"),
		"description": prop("string", "Optional details"),
		"priority":    prop("integer", "1-10; >8 High, 5-8 Medium, <5 Low"),
		"deadline":    prop("string", "ISO 8601 date-time with offset, a date, or a phrase like \"tomorrow\""),
	}, "title")
}

func (t *CreateTodoTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	title, _ := stringParam(params, "title")
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", agent.ErrInvalidParams)
	}
	description, _ := stringParam(params, "description")
	deadline, _ := stringParam(params, "deadline")

	created, err := t.uc.Create(ctx, sc, todo.CreateInput{
		Title:       title,
		Description: description,
		Priority:    intParam(params, "priority"),
		Deadline:    deadline,
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"todo": newView(created, t.loc)}, nil
}
