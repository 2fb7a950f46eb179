package orchestrator

import (
	"context"

	"github.com/Sajidddd11/telegramtodo/internal/agent"
	"github.com/Sajidddd11/telegramtodo/internal/agent/memory"
	"github.com/Sajidddd11/telegramtodo/internal/model"
)

// ModelGateway is satisfied by *gateway.Gateway.
type ModelGateway interface {
	Available() bool
	Send(ctx context.Context, messages []memory.Message) (string, error)
}

// ActionDispatcher is satisfied by *agent.Dispatcher.
type ActionDispatcher interface {
	Execute(ctx context.Context, sc model.Scope, name string, params map[string]interface{}) agent.Observation
}
