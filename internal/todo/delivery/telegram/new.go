package telegram

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Sajidddd11/telegramtodo/internal/agent/orchestrator"
	"github.com/Sajidddd11/telegramtodo/internal/agent/persona"
	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
	"github.com/Sajidddd11/telegramtodo/internal/webhook"
	pkgLog "github.com/Sajidddd11/telegramtodo/pkg/log"
	pkgTelegram "github.com/Sajidddd11/telegramtodo/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
	HandleLink(c *gin.Context)
	// Poll processes updates until the channel closes or ctx ends.
	Poll(ctx context.Context, updates <-chan pkgTelegram.Update) error
}

// Assistant answers free-form messages.
type Assistant interface {
	ProcessQuery(ctx context.Context, sc model.Scope, query string) (orchestrator.Result, error)
}

type handler struct {
	l         pkgLog.Logger
	uc        todo.UseCase
	sender    pkgTelegram.Sender
	assistant Assistant
	persona   *persona.Sanitizer
	validator *webhook.SecurityValidator

	// link code -> chat id
	codes *expirable.LRU[string, int64]

	qmu    sync.Mutex // guards queues
	queues map[int64]*chatQueue
	wg     sync.WaitGroup
}

// New creates a new Telegram delivery handler. validator may be nil.
func New(
	l pkgLog.Logger,
	uc todo.UseCase,
	sender pkgTelegram.Sender,
	assistant Assistant,
	p *persona.Sanitizer,
	validator *webhook.SecurityValidator,
) Handler {
	if p == nil {
		p = persona.New(persona.Config{})
	}
	return &handler{
		l:         l,
		uc:        uc,
		sender:    sender,
		assistant: assistant,
		persona:   p,
		validator: validator,
		codes:     expirable.NewLRU[string, int64](linkCacheSize, nil, linkCodeTTL),
		queues:    make(map[int64]*chatQueue),
	}
}
