package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/agent/memory"
	"github.com/Sajidddd11/telegramtodo/internal/agent/protocol"
	"github.com/Sajidddd11/telegramtodo/pkg/llmprovider"
	pkgLog "github.com/Sajidddd11/telegramtodo/pkg/log"
)

// Generator is the part of llmprovider.Manager the gateway uses.
type Generator interface {
	Configured() bool
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Config configures a Gateway.
type Config struct {
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// Gateway sends a conversation to the model service and returns its reply text.
type Gateway struct {
	gen Generator
	l   pkgLog.Logger
	cfg Config
}

// New creates a Gateway over gen.
func New(gen Generator, l pkgLog.Logger, cfg Config) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	return &Gateway{gen: gen, l: l, cfg: cfg}
}

// Available reports whether a provider is configured.
func (g *Gateway) Available() bool {
	return g.gen != nil && g.gen.Configured()
}

// Send makes one blocking call with messages, in order. The system message,
// if present, becomes the system instruction.
func (g *Gateway) Send(ctx context.Context, messages []memory.Message) (string, error) {
	if !g.Available() {
		return "", ErrGatewayUnavailable
	}

	req := BuildRequest(messages)
	req.Temperature = g.cfg.Temperature
	req.MaxTokens = g.cfg.MaxTokens

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	resp, err := g.gen.GenerateContent(ctx, req)
	if err != nil {
		g.l.Warnf(ctx, "agent.gateway.Send: %v", err)
		return "", fmt.Errorf("%w: %w", ErrGatewayCallFailure, err)
	}
	return resp.Content.Text(), nil
}

// BuildRequest converts a transcript into a JSON-mode provider request.
// Observations travel as user messages, wrapped as assistant envelopes.
func BuildRequest(messages []memory.Message) *llmprovider.Request {
	req := &llmprovider.Request{
		Messages:       make([]llmprovider.Message, 0, len(messages)),
		ResponseFormat: llmprovider.ResponseFormatJSONObject,
	}
	for _, m := range messages {
		switch m.Role {
		case memory.RoleSystem:
			sys := llmprovider.TextMessage(llmprovider.RoleSystem, m.Content)
			req.SystemInstruction = &sys
		case memory.RoleUser:
			req.Messages = append(req.Messages, llmprovider.TextMessage(llmprovider.RoleUser, protocol.EncodeUser(m.Content)))
		case memory.RoleObservation:
			req.Messages = append(req.Messages, llmprovider.TextMessage(llmprovider.RoleUser, protocol.EncodeObservation([]byte(m.Content))))
		case memory.RoleAssistant:
			req.Messages = append(req.Messages, llmprovider.TextMessage(llmprovider.RoleAssistant, m.Content))
		}
	}
	return req
}
