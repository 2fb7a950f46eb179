package llmprovider

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	aoption "github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicMaxTokens = 1024

// jsonOnlyHint is added to the system prompt because the Messages API has no JSON mode.
const jsonOnlyHint = "Respond with a single JSON object and nothing else."

// AnthropicAdapter adapts the Anthropic Messages API to the Provider interface
type AnthropicAdapter struct {
	client anthropic.Client
	model  string
}

// NewAnthropicAdapter creates a new Anthropic adapter
func NewAnthropicAdapter(apiKey, baseURL, model string, timeout time.Duration) *AnthropicAdapter {
	opts := []aoption.RequestOption{
		aoption.WithAPIKey(strings.TrimSpace(apiKey)),
		aoption.WithMaxRetries(0),
	}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, aoption.WithBaseURL(strings.TrimSpace(baseURL)))
	}
	if timeout > 0 {
		opts = append(opts, aoption.WithRequestTimeout(timeout))
	}
	return &AnthropicAdapter{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

// GenerateContent implements Provider interface
func (a *AnthropicAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	maxTokens := int64(defaultAnthropicMaxTokens)
	if req.MaxTokens > 0 {
		maxTokens = int64(req.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: maxTokens,
		Messages:  buildAnthropicMessages(req.Messages),
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	system := ""
	if req.SystemInstruction != nil {
		system = req.SystemInstruction.Text()
	}
	if req.ResponseFormat == ResponseFormatJSONObject {
		system = strings.TrimSpace(system + "\n\n" + jsonOnlyHint)
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(tb.Text)
		}
	}

	return &Response{
		Content:      TextMessage(RoleAssistant, text.String()),
		ProviderName: a.Name(),
		ModelName:    a.model,
		Usage: &Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
			TotalTokens:  int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}

// Name returns provider name
func (a *AnthropicAdapter) Name() string {
	return "anthropic"
}

// Model returns model name
func (a *AnthropicAdapter) Model() string {
	return a.model
}

// buildAnthropicMessages merges consecutive same-role turns, which the API rejects.
func buildAnthropicMessages(msgs []Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(msgs))
	var (
		role  string
		parts []string
	)
	flush := func() {
		if len(parts) == 0 {
			return
		}
		block := anthropic.NewTextBlock(strings.Join(parts, "\n\n"))
		if role == RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
		parts = nil
	}

	for _, msg := range msgs {
		r := RoleUser
		if msg.Role == RoleAssistant {
			r = RoleAssistant
		}
		if r != role {
			flush()
			role = r
		}
		parts = append(parts, msg.Text())
	}
	flush()
	return out
}

var _ Provider = (*AnthropicAdapter)(nil)
