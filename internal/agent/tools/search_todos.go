package tools

import (
	"context"
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/agent"
	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
)

// SearchTodosTool finds todos by a substring of title or description.
type SearchTodosTool struct {
	uc  todo.UseCase
	loc *time.Location
}

func NewSearchTodosTool(uc todo.UseCase, loc *time.Location) agent.Tool {
	return &SearchTodosTool{uc: uc, loc: loc}
}

func (t *SearchTodosTool) Name() string {
	return agent.ActionSearchTodos
}

func (t *SearchTodosTool) Description() string {
	return "Search the user's todos by a case-insensitive substring of title or description. No match is a normal, empty result."
}

func (t *SearchTodosTool) Parameters() map[string]interface{} {
	return schema(map[string]interface{}{
		"query": prop("string", "Text to look for"),
	}, "query")
}

func (t *SearchTodosTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	query, _ := stringParam(params, "query")

	todos, err := t.uc.Search(ctx, sc, todo.SearchInput{Query: query})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"query": query,
		"todos": newViews(todos, t.loc),
		"count": len(todos),
	}, nil
}
