package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	agentHTTP "github.com/Sajidddd11/telegramtodo/internal/agent/delivery/http"
	"github.com/Sajidddd11/telegramtodo/internal/middleware"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
	tgDelivery "github.com/Sajidddd11/telegramtodo/internal/todo/delivery/telegram"
	"github.com/Sajidddd11/telegramtodo/internal/webhook"
	"github.com/Sajidddd11/telegramtodo/pkg/log"
)

// ReadinessCheck reports whether a backing service can take traffic.
type ReadinessCheck func(ctx context.Context) error

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration

	middleware middleware.Middleware
	ready      ReadinessCheck

	// Todo domain
	todoUC todo.UseCase

	// AI domain
	assistant agentHTTP.Assistant
	providers []string

	// Telegram
	telegramHandler  tgDelivery.Handler
	webhookValidator *webhook.SecurityValidator

	// Metrics
	metricsPath string
	gatherer    prometheus.Gatherer
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration

	Middleware middleware.Middleware
	// Ready backs /ready. Nil means always ready.
	Ready ReadinessCheck

	TodoUseCase todo.UseCase

	// Assistant enables /api/v1/ai when set.
	Assistant agentHTTP.Assistant
	Providers []string

	// TelegramHandler enables the webhook and link routes when set.
	TelegramHandler  tgDelivery.Handler
	WebhookValidator *webhook.SecurityValidator

	// Gatherer enables the metrics route when set.
	MetricsPath string
	Gatherer    prometheus.Gatherer
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = DefaultMetricsPath
	}

	srv := &HTTPServer{
		l:                logger,
		gin:              gin.New(),
		port:             cfg.Port,
		mode:             cfg.Mode,
		environment:      cfg.Environment,
		shutdownTimeout:  cfg.ShutdownTimeout,
		middleware:       cfg.Middleware,
		ready:            cfg.Ready,
		todoUC:           cfg.TodoUseCase,
		assistant:        cfg.Assistant,
		providers:        cfg.Providers,
		telegramHandler:  cfg.TelegramHandler,
		webhookValidator: cfg.WebhookValidator,
		metricsPath:      cfg.MetricsPath,
		gatherer:         cfg.Gatherer,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.todoUC == nil {
		return errors.New("todo use case is required")
	}
	return nil
}
