package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Sajidddd11/telegramtodo/internal/model"
	pkgResponse "github.com/Sajidddd11/telegramtodo/pkg/response"
	pkgTelegram "github.com/Sajidddd11/telegramtodo/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It acknowledges immediately and processes the message in the background,
// since a model turn can outlast Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": statusIgnored})
		return
	}

	// Snapshot the message before spawning goroutine to avoid data races on gin context
	msg := update.Message

	if h.validator != nil {
		if err := h.validator.CheckRateLimit(strconv.FormatInt(msg.Chat.ID, 10)); err != nil {
			h.l.Warnf(ctx, "telegram handler: %v", err)
			// Telegram retries non-2xx answers, so throttled updates are still acknowledged.
			pkgResponse.OK(c, map[string]string{"status": statusThrottled})
			h.notify(context.Background(), msg.Chat.ID, fmt.Sprintf(msgRateLimited, h.persona.Token()))
			return
		}
	}

	// Detach from HTTP request context (which gets cancelled after response)
	h.enqueue(context.Background(), msg)

	pkgResponse.OK(c, map[string]string{"status": statusAccepted})
}

// Poll hands every update to the queue of its chat, so one chat's messages
// are answered in the order they were sent.
func (h *handler) Poll(ctx context.Context, updates <-chan pkgTelegram.Update) error {
	defer h.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Chat == nil {
				continue
			}
			h.enqueue(ctx, update.Message)
		}
	}
}

// handleMessage processes one message and delivers the reply.
func (h *handler) handleMessage(ctx context.Context, msg *pkgTelegram.Message) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	sc, err := h.resolveScope(ctx, msg)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: resolve scope: %v", err)
		h.notify(ctx, msg.Chat.ID, msgFailure)
		return
	}

	reply, err := h.route(ctx, sc, msg.Chat.ID, text)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: user=%s: %v", sc.UserID, err)
		reply = msgFailure
	}
	h.notify(ctx, msg.Chat.ID, reply)
}

// route picks a command, the quick list shortcut, or the assistant.
func (h *handler) route(ctx context.Context, sc model.Scope, chatID int64, text string) (string, error) {
	if strings.HasPrefix(text, "/") {
		return h.command(ctx, sc, chatID, text)
	}

	if isListRequest(text) {
		return h.listReply(ctx, sc)
	}

	res, err := h.assistant.ProcessQuery(ctx, sc, text)
	if err != nil {
		return "", err
	}
	h.l.Infof(ctx, "telegram handler: user=%s state=%s iterations=%d actions=%v",
		sc.UserID, res.State, res.Iterations, res.Actions)
	return res.Reply, nil
}

// resolveScope maps a chat to the linked app account, or to a Telegram-only user.
func (h *handler) resolveScope(ctx context.Context, msg *pkgTelegram.Message) (model.Scope, error) {
	sc := model.Scope{Channel: model.ChannelTelegram}
	if msg.From != nil {
		sc.Username = msg.From.Username
	}

	linked, err := h.uc.ResolveTelegramUser(ctx, msg.Chat.ID)
	if err != nil {
		return sc, err
	}
	if linked != "" {
		sc.UserID = linked
		return sc, nil
	}

	fromID := msg.Chat.ID
	if msg.From != nil {
		fromID = msg.From.ID
	}
	sc.UserID = userIDPrefix + strconv.FormatInt(fromID, 10)
	return sc, nil
}

func (h *handler) notify(ctx context.Context, chatID int64, text string) {
	if err := h.sender.Send(ctx, chatID, text); err != nil {
		h.l.Warnf(ctx, "telegram handler: send to chat %d: %v", chatID, err)
	}
}

// isListRequest matches messages like "list my todos" or "show todo list".
func isListRequest(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "list") && strings.Contains(lower, "todo")
}
