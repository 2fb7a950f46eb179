package http

import (
	"context"

	"github.com/Sajidddd11/telegramtodo/internal/agent/memory"
	"github.com/Sajidddd11/telegramtodo/internal/agent/orchestrator"
	"github.com/Sajidddd11/telegramtodo/internal/model"
	pkgLog "github.com/Sajidddd11/telegramtodo/pkg/log"
)

// Assistant is the part of the orchestrator the AI endpoints use.
type Assistant interface {
	Available() bool
	ProcessQuery(ctx context.Context, sc model.Scope, query string) (orchestrator.Result, error)
	Reset(userID string)
	Stats(userID string) memory.Stats
}

type handler struct {
	l         pkgLog.Logger
	assistant Assistant
	providers []string
}

// New creates the AI handler. providers is reported by the status endpoint.
func New(l pkgLog.Logger, assistant Assistant, providers []string) *handler {
	if providers == nil {
		providers = []string{}
	}
	return &handler{
		l:         l,
		assistant: assistant,
		providers: providers,
	}
}
