package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/Sajidddd11/telegramtodo/config"
	_ "github.com/Sajidddd11/telegramtodo/docs" // Swagger docs
	"github.com/Sajidddd11/telegramtodo/internal/app"
	"github.com/Sajidddd11/telegramtodo/internal/httpserver"
	"github.com/Sajidddd11/telegramtodo/internal/middleware"
	tgDelivery "github.com/Sajidddd11/telegramtodo/internal/todo/delivery/telegram"
	"github.com/Sajidddd11/telegramtodo/internal/webhook"
	"github.com/Sajidddd11/telegramtodo/pkg/log"
	"github.com/Sajidddd11/telegramtodo/pkg/scope"
	"github.com/Sajidddd11/telegramtodo/pkg/telegram"
)

// @title                      TodoBot API
// @description                Todo list with an LLM assistant, reachable over REST and Telegram.
// @version                    1
// @host                       localhost:8080
// @schemes                    http
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting TodoBot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Errorf(ctx, "Server stopped with error: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	// 3. Metrics
	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	// 4. Core: store, todo use case, assistant
	var reg prometheus.Registerer
	if registry != nil {
		reg = registry
	}
	core, err := app.Build(ctx, cfg, logger, reg)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer core.Close()

	// 5. Auth
	jwtManager, err := scope.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Warnf(ctx, "JWT auth disabled (%v): protected routes will answer 401", err)
		jwtManager = nil
	}
	mw := middleware.New(logger, jwtManager)

	// 6. Telegram
	var (
		bot             *telegram.Bot
		telegramHandler tgDelivery.Handler
		validator       *webhook.SecurityValidator
	)
	if cfg.Telegram.BotToken != "" {
		bot, err = telegram.NewBot(cfg.Telegram.BotToken, cfg.Telegram.APIURL)
		if err != nil {
			return fmt.Errorf("telegram bot: %w", err)
		}
		validator = webhook.NewSecurityValidator(webhook.SecurityConfig{
			SecretToken:     cfg.Telegram.SecretToken,
			AllowedIPs:      cfg.Telegram.AllowedIPs,
			RateLimitPerMin: cfg.Telegram.RateLimitPerMin,
		})
		telegramHandler = tgDelivery.New(logger, core.Todos, bot, core.Orchestrator, core.Persona, validator)
	} else {
		logger.Warn(ctx, "Telegram skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 7. HTTP Server
	httpCfg := httpserver.Config{
		Logger:           logger,
		Port:             cfg.HTTPServer.Port,
		Mode:             cfg.HTTPServer.Mode,
		Environment:      cfg.Environment.Name,
		Middleware:       mw,
		Ready:            core.Repo.Ping,
		TodoUseCase:      core.Todos,
		Assistant:        core.Orchestrator,
		Providers:        core.Providers,
		TelegramHandler:  telegramHandler,
		WebhookValidator: validator,
		MetricsPath:      cfg.Metrics.Path,
	}
	if registry != nil {
		httpCfg.Gatherer = registry
	}
	httpServer, err := httpserver.New(logger, httpCfg)
	if err != nil {
		return fmt.Errorf("init HTTP server: %w", err)
	}

	// 8. Run
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Run(gctx)
	})
	if bot != nil {
		g.Go(func() error {
			return runTelegram(gctx, cfg.Telegram, bot, telegramHandler, logger)
		})
	}
	return g.Wait()
}

// runTelegram registers the webhook, or long-polls until ctx ends.
func runTelegram(ctx context.Context, cfg config.TelegramConfig, bot *telegram.Bot, h tgDelivery.Handler, logger log.Logger) error {
	if cfg.Mode == config.TelegramModeWebhook {
		webhookURL := cfg.WebhookURL
		if webhookURL == "" {
			publicURL, err := detectNgrokURL(ctx, defaultNgrokAPI)
			if err != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
				return nil
			}
			webhookURL = publicURL + "/webhook/telegram"
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
		if err := bot.SetWebhook(ctx, webhookURL, cfg.SecretToken); err != nil {
			logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
			return nil
		}
		logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
		return nil
	}

	// Polling and webhooks are mutually exclusive on Telegram's side.
	if err := bot.DeleteWebhook(ctx); err != nil {
		logger.Warnf(ctx, "Failed to delete Telegram webhook: %v", err)
	}
	updates, err := bot.Updates(ctx)
	if err != nil {
		return fmt.Errorf("telegram polling: %w", err)
	}
	logger.Info(ctx, "Telegram long polling started")
	return h.Poll(ctx, updates)
}
