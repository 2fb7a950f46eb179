package orchestrator

import (
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/agent/memory"
	"github.com/Sajidddd11/telegramtodo/internal/agent/observability"
	"github.com/Sajidddd11/telegramtodo/internal/agent/persona"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
	pkgLog "github.com/Sajidddd11/telegramtodo/pkg/log"
)

// Orchestrator runs the plan, action, observation, output loop of every turn.
type Orchestrator struct {
	memory     *memory.Store
	gateway    ModelGateway
	dispatcher ActionDispatcher
	todos      todo.UseCase
	persona    *persona.Sanitizer
	obs        observability.Observer
	builder    *ContextBuilder
	l          pkgLog.Logger
	cfg        Config
}

func New(deps Deps, l pkgLog.Logger, cfg Config) *Orchestrator {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if deps.Persona == nil {
		deps.Persona = persona.New(persona.Config{Location: cfg.Location})
	}
	if cfg.Location == nil {
		cfg.Location = deps.Persona.Location()
	}
	if deps.Memory == nil {
		deps.Memory = memory.New(memory.Config{})
	}
	if deps.Observer == nil {
		deps.Observer = observability.Nop{}
	}

	return &Orchestrator{
		memory:     deps.Memory,
		gateway:    deps.Gateway,
		dispatcher: deps.Dispatcher,
		todos:      deps.Todos,
		persona:    deps.Persona,
		obs:        deps.Observer,
		builder:    NewContextBuilder(cfg.Location, deps.Persona.Token(), cfg.Now, deps.Tools),
		l:          l,
		cfg:        cfg,
	}
}

// Available reports whether the model gateway can take calls.
func (o *Orchestrator) Available() bool {
	return o.gateway != nil && o.gateway.Available()
}

// Reset forgets the user's conversation.
func (o *Orchestrator) Reset(userID string) {
	o.memory.Evict(userID)
}

// Stats describes the user's conversation memory.
func (o *Orchestrator) Stats(userID string) memory.Stats {
	return o.memory.Stats(userID)
}
