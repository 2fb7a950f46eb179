package agent

import (
	"context"

	"github.com/Sajidddd11/telegramtodo/internal/model"
)

// Action names understood by the dispatcher.
const (
	ActionGetAllTodos = "getAllTodos"
	ActionCreateTodo  = "createTodo"
	ActionUpdateTodo  = "updateTodo"
	ActionDeleteTodo  = "deleteTodo"
	ActionSearchTodos = "searchTodos"
)

// Tool represents one task operation the model can request.
type Tool interface {
	// Name returns the action name used in the JSON protocol.
	Name() string

	// Description returns what the tool does (for the model).
	Description() string

	// Parameters returns JSON schema for tool parameters.
	Parameters() map[string]interface{}

	// Execute runs the tool for the scope's user.
	Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error)
}

// TargetedTool acts on one existing todo named by TargetParam.
// The dispatcher refuses to run it without that parameter.
type TargetedTool interface {
	Tool
	TargetParam() string
}

// ToolRegistry manages available tools in registration order.
type ToolRegistry struct {
	tools map[string]Tool
	order []string
}

// NewToolRegistry creates a new tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry. Registering a name twice replaces the tool.
func (r *ToolRegistry) Register(tool Tool) {
	if _, ok := r.tools[tool.Name()]; !ok {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name.
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tools.
func (r *ToolRegistry) List() []Tool {
	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Names returns the registered action names.
func (r *ToolRegistry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
