package orchestrator

import (
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/agent"
	"github.com/Sajidddd11/telegramtodo/internal/agent/memory"
	"github.com/Sajidddd11/telegramtodo/internal/agent/observability"
	"github.com/Sajidddd11/telegramtodo/internal/agent/persona"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
)

// State of a turn.
type State string

const (
	StateAwaitingModel State = "AWAITING_MODEL"
	StateDispatching   State = "DISPATCHING"
	StateDone          State = "DONE"
	StateFailed        State = "FAILED"
)

// Result is the outcome of one turn.
type Result struct {
	Reply      string   `json:"reply"`
	State      State    `json:"state"`
	Reason     string   `json:"reason,omitempty"`
	Iterations int      `json:"iterations"`
	Actions    []string `json:"actions"`
}

// Config bounds a turn.
type Config struct {
	MaxIterations int
	// MaxRetries applies to failed gateway calls.
	MaxRetries int
	RetryDelay time.Duration
	Location   *time.Location
	Now        func() time.Time
}

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Memory     *memory.Store
	Gateway    ModelGateway
	Dispatcher ActionDispatcher
	// Todos supplies the titles shown in the system instruction.
	Todos    todo.UseCase
	Persona  *persona.Sanitizer
	Observer observability.Observer
	// Tools are listed as the actions the model may call.
	Tools []agent.Tool
}
