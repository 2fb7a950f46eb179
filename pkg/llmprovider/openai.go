package llmprovider

import (
	"context"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIAdapter talks to any OpenAI-compatible chat completions endpoint.
type OpenAIAdapter struct {
	client openai.Client
	model  string
	name   string
}

// NewOpenAIAdapter creates an adapter. baseURL may be empty for api.openai.com
// and a zero timeout leaves the SDK default in place.
func NewOpenAIAdapter(name, apiKey, baseURL, model string, timeout time.Duration) *OpenAIAdapter {
	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(apiKey)),
		option.WithMaxRetries(0),
	}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimSpace(baseURL)))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	if name == "" {
		name = "openai"
	}
	return &OpenAIAdapter{
		client: openai.NewClient(opts...),
		model:  model,
		name:   name,
	}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(a.model),
		Messages: buildOpenAIMessages(req),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.ResponseFormat == ResponseFormatJSONObject {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: a.name, Err: ErrEmptyResponse}
	}

	return &Response{
		Content:      TextMessage(RoleAssistant, resp.Choices[0].Message.Content),
		ProviderName: a.name,
		ModelName:    a.model,
		Usage: &Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:  int(resp.Usage.TotalTokens),
		},
	}, nil
}

// Name returns provider name
func (a *OpenAIAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *OpenAIAdapter) Model() string {
	return a.model
}

func buildOpenAIMessages(req *Request) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.SystemInstruction != nil {
		if txt := req.SystemInstruction.Text(); txt != "" {
			out = append(out, openai.SystemMessage(txt))
		}
	}
	for _, msg := range req.Messages {
		txt := msg.Text()
		switch msg.Role {
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(txt))
		case RoleSystem:
			out = append(out, openai.SystemMessage(txt))
		default:
			out = append(out, openai.UserMessage(txt))
		}
	}
	return out
}

var _ Provider = (*OpenAIAdapter)(nil)
