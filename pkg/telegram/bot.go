package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// Sender delivers a reply to a chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Bot is the Telegram Bot API client.
type Bot struct {
	api *telego.Bot
}

// NewBot creates a Bot. An empty apiURL means the public Bot API server.
func NewBot(token, apiURL string) (*Bot, error) {
	if apiURL == "" {
		apiURL = defaultAPIServer
	}
	api, err := telego.NewBot(token,
		telego.WithAPIServer(apiURL),
		telego.WithHTTPClient(&http.Client{Timeout: 70 * time.Second}),
		telego.WithDiscardLogger(),
	)
	if err != nil {
		return nil, fmt.Errorf("telegram: create bot: %w", err)
	}
	return &Bot{api: api}, nil
}

// Send sends text to chatID, split into several messages when it is too long.
func (b *Bot) Send(ctx context.Context, chatID int64, text string) error {
	for _, chunk := range Split(text, MaxMessageLength) {
		if _, err := b.api.SendMessage(ctx, tu.Message(tu.ID(chatID), chunk)); err != nil {
			return fmt.Errorf("telegram: send message: %w", err)
		}
	}
	return nil
}

// SetWebhook registers the webhook URL with Telegram. Telegram echoes
// secretToken in the X-Telegram-Bot-Api-Secret-Token header of every call.
func (b *Bot) SetWebhook(ctx context.Context, webhookURL, secretToken string) error {
	err := b.api.SetWebhook(ctx, &telego.SetWebhookParams{
		URL:         webhookURL,
		SecretToken: secretToken,
	})
	if err != nil {
		return fmt.Errorf("telegram: set webhook: %w", err)
	}
	return nil
}

// DeleteWebhook removes any webhook so long polling can start.
func (b *Bot) DeleteWebhook(ctx context.Context) error {
	if err := b.api.DeleteWebhook(ctx, &telego.DeleteWebhookParams{}); err != nil {
		return fmt.Errorf("telegram: delete webhook: %w", err)
	}
	return nil
}

// Updates long-polls Telegram until ctx is done. The returned channel is
// closed when polling stops.
func (b *Bot) Updates(ctx context.Context) (<-chan Update, error) {
	raw, err := b.api.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{Timeout: 30})
	if err != nil {
		return nil, fmt.Errorf("telegram: long polling: %w", err)
	}

	out := make(chan Update)
	go func() {
		defer close(out)
		for u := range raw {
			select {
			case out <- fromTelego(u):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func fromTelego(u telego.Update) Update {
	upd := Update{UpdateID: int64(u.UpdateID)}
	if u.Message == nil {
		return upd
	}

	m := u.Message
	upd.Message = &Message{
		MessageID: int64(m.MessageID),
		Chat:      &Chat{ID: m.Chat.ID, Type: m.Chat.Type},
		Date:      m.Date,
		Text:      m.Text,
	}
	if m.From != nil {
		upd.Message.From = &User{
			ID:        m.From.ID,
			FirstName: m.From.FirstName,
			LastName:  m.From.LastName,
			Username:  m.From.Username,
		}
	}
	return upd
}

// Split cuts text into chunks of at most limit runes, preferring line breaks.
func Split(text string, limit int) []string {
	if limit <= 0 {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		if i := lastIndex(runes[:limit], '\n'); i > 0 {
			cut = i + 1
		}
		chunks = append(chunks, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
	}
	return append(chunks, string(runes))
}

func lastIndex(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
