// Package app assembles the todo store, the assistant loop and their
// collaborators from configuration. Both binaries start from here.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Sajidddd11/telegramtodo/config"
	"github.com/Sajidddd11/telegramtodo/internal/agent"
	"github.com/Sajidddd11/telegramtodo/internal/agent/gateway"
	"github.com/Sajidddd11/telegramtodo/internal/agent/memory"
	"github.com/Sajidddd11/telegramtodo/internal/agent/observability"
	"github.com/Sajidddd11/telegramtodo/internal/agent/orchestrator"
	"github.com/Sajidddd11/telegramtodo/internal/agent/persona"
	"github.com/Sajidddd11/telegramtodo/internal/agent/tools"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
	"github.com/Sajidddd11/telegramtodo/internal/todo/repository"
	"github.com/Sajidddd11/telegramtodo/internal/todo/repository/postgrest"
	"github.com/Sajidddd11/telegramtodo/internal/todo/repository/sqlite"
	"github.com/Sajidddd11/telegramtodo/internal/todo/usecase"
	"github.com/Sajidddd11/telegramtodo/pkg/datemath"
	"github.com/Sajidddd11/telegramtodo/pkg/llmprovider"
	"github.com/Sajidddd11/telegramtodo/pkg/log"
)

// App is the assembled core.
type App struct {
	Repo         repository.Repository
	Todos        todo.UseCase
	Persona      *persona.Sanitizer
	Orchestrator *orchestrator.Orchestrator
	Providers    []string

	closers []func() error
}

// Build wires the core. reg may be nil to skip Prometheus metrics.
func Build(ctx context.Context, cfg *config.Config, l log.Logger, reg prometheus.Registerer) (*App, error) {
	a := &App{}

	dm, err := datemath.NewParser(cfg.Agent.Timezone)
	if err != nil {
		l.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Agent.Timezone, err)
		dm, _ = datemath.NewParser("UTC")
	}

	repo, err := a.openStore(ctx, cfg.Store, l)
	if err != nil {
		return nil, err
	}
	a.Repo = repo
	a.Todos = usecase.New(l, repo, dm)

	var observer observability.Observer = observability.NewLogger(l)
	if reg != nil {
		observer = observability.Multi{observer, observability.NewMetrics(reg)}
	}

	manager := newProviderManager(ctx, cfg.LLM, l)
	a.Providers = manager.Providers()

	a.Persona = persona.New(persona.Config{
		Token:    cfg.Agent.PersonaToken,
		Palette:  cfg.Agent.Palette,
		Location: dm.Location(),
	})

	registry := agent.NewToolRegistry()
	tools.Register(registry, a.Todos, dm.Location())

	a.Orchestrator = orchestrator.New(orchestrator.Deps{
		Memory: memory.New(memory.Config{
			MaxHistory: cfg.Agent.MaxHistory,
			IdleTTL:    cfg.Agent.SessionTTL,
		}),
		Gateway: gateway.New(manager, l, gateway.Config{
			Timeout:     cfg.Agent.GatewayTimeout,
			Temperature: cfg.Agent.Temperature,
		}),
		Dispatcher: agent.NewDispatcher(registry, a.Todos, observer, l, agent.DispatcherConfig{
			ActionTimeout: cfg.Agent.ActionTimeout,
			MaxRetries:    cfg.Agent.MaxRetries,
			RetryDelay:    cfg.Agent.RetryDelay,
		}),
		Todos:    a.Todos,
		Persona:  a.Persona,
		Observer: observer,
		Tools:    registry.List(),
	}, l, orchestrator.Config{
		MaxIterations: cfg.Agent.MaxIterations,
		MaxRetries:    cfg.Agent.MaxRetries,
		RetryDelay:    cfg.Agent.RetryDelay,
		Location:      dm.Location(),
	})

	if len(a.Providers) == 0 {
		l.Warn(ctx, "No LLM provider initialized, the assistant will answer with a fallback message")
	} else {
		l.Infof(ctx, "Assistant ready with providers %v", a.Providers)
	}
	return a, nil
}

// Close releases the store.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (a *App) openStore(ctx context.Context, cfg config.StoreConfig, l log.Logger) (repository.Repository, error) {
	switch cfg.Driver {
	case config.StoreDriverPostgREST:
		l.Infof(ctx, "Todo store: PostgREST at %s", cfg.PostgRESTURL)
		return postgrest.New(postgrest.NewClient(cfg.PostgRESTURL, cfg.PostgRESTKey), l), nil
	case config.StoreDriverSQLite, "":
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		l.Infof(ctx, "Todo store: sqlite at %s", cfg.SQLitePath)
		return sqlite.New(db, l), nil
	default:
		return nil, fmt.Errorf("app: unknown store driver %q", cfg.Driver)
	}
}

func newProviderManager(ctx context.Context, cfg config.LLMConfig, l log.Logger) *llmprovider.Manager {
	providers, initErrs := llmprovider.InitializeProviders(&cfg)
	for _, err := range initErrs {
		l.Warnf(ctx, "LLM provider skipped: %v", err)
	}

	return llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      parseDuration(cfg.RetryDelay, time.Second),
		MaxTotalTimeout: parseDuration(cfg.MaxTotalTimeout, time.Minute),
	}, l)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
