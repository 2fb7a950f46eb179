package tools

import (
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/agent"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
)

// Register adds the five todo tools to registry.
// loc is the timezone deadlines are shown in.
func Register(registry *agent.ToolRegistry, uc todo.UseCase, loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	registry.Register(NewGetAllTodosTool(uc, loc))
	registry.Register(NewCreateTodoTool(uc, loc))
	registry.Register(NewUpdateTodoTool(uc, loc))
	registry.Register(NewDeleteTodoTool(uc))
	registry.Register(NewSearchTodosTool(uc, loc))
}
