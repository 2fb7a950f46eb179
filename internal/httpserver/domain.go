package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	agentHTTP "github.com/Sajidddd11/telegramtodo/internal/agent/delivery/http"
	todoHTTP "github.com/Sajidddd11/telegramtodo/internal/todo/delivery/http"
)

// setupTodoDomain registers /api/v1/todos.
func (srv *HTTPServer) setupTodoDomain(api *gin.RouterGroup) {
	h := todoHTTP.New(srv.l, srv.todoUC)
	todoHTTP.RegisterRoutes(api.Group("/todos"), h, srv.middleware)
	srv.l.Infof(context.Background(), "Todo domain registered")
}

// setupAIDomain registers /api/v1/ai when an assistant is wired.
func (srv *HTTPServer) setupAIDomain(api *gin.RouterGroup) {
	ctx := context.Background()
	if srv.assistant == nil {
		srv.l.Infof(ctx, "Assistant not configured, skipping AI routes")
		return
	}
	h := agentHTTP.New(srv.l, srv.assistant, srv.providers)
	agentHTTP.RegisterRoutes(api.Group("/ai"), h, srv.middleware)
	srv.l.Infof(ctx, "AI domain registered")
}

// setupTelegramDomain registers the webhook and the chat link route.
func (srv *HTTPServer) setupTelegramDomain(api *gin.RouterGroup) {
	ctx := context.Background()
	if srv.telegramHandler == nil {
		srv.l.Infof(ctx, "Telegram handler not configured, skipping webhook route")
		return
	}

	webhookChain := []gin.HandlerFunc{}
	if srv.webhookValidator != nil {
		webhookChain = append(webhookChain, srv.webhookValidator.Guard())
	}
	webhookChain = append(webhookChain, srv.telegramHandler.HandleWebhook)
	srv.gin.POST(telegramWebhook, webhookChain...)

	api.POST("/telegram/link", srv.middleware.Auth(), srv.telegramHandler.HandleLink)
	srv.l.Infof(ctx, "Telegram webhook route registered at POST %s", telegramWebhook)
}
