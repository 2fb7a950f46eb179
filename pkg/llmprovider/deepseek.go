package llmprovider

import (
	"context"

	"github.com/Sajidddd11/telegramtodo/pkg/deepseek"
)

// DeepSeekAdapter adapts pkg/deepseek to llmprovider.Provider interface
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
}

// NewDeepSeekAdapter creates a new DeepSeek adapter
func NewDeepSeekAdapter(client deepseek.IDeepSeek) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *DeepSeekAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	dsReq := &deepseek.Request{
		Messages:    make([]deepseek.Message, 0, len(req.Messages)+1),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	// Add system instruction as first message if present
	if req.SystemInstruction != nil {
		if txt := req.SystemInstruction.Text(); txt != "" {
			dsReq.Messages = append(dsReq.Messages, deepseek.Message{Role: RoleSystem, Content: txt})
		}
	}
	for _, msg := range req.Messages {
		dsReq.Messages = append(dsReq.Messages, deepseek.Message{Role: msg.Role, Content: msg.Text()})
	}
	if req.ResponseFormat == ResponseFormatJSONObject {
		dsReq.ResponseFormat = &deepseek.ResponseFormat{Type: ResponseFormatJSONObject}
	}

	resp, err := a.client.GenerateContent(ctx, dsReq)
	if err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: a.Name(), Err: ErrEmptyResponse}
	}

	return &Response{
		Content:      TextMessage(RoleAssistant, resp.Choices[0].Message.Content),
		ProviderName: a.Name(),
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the provider name
func (a *DeepSeekAdapter) Name() string {
	return "deepseek"
}

// Model returns the model name
func (a *DeepSeekAdapter) Model() string {
	return a.client.Model()
}

var _ Provider = (*DeepSeekAdapter)(nil)
