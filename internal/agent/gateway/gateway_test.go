package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sajidddd11/telegramtodo/internal/agent/memory"
	"github.com/Sajidddd11/telegramtodo/pkg/llmprovider"
	"github.com/Sajidddd11/telegramtodo/pkg/log"
)

type fakeGenerator struct {
	configured bool
	reply      string
	err        error
	wait       bool
	got        *llmprovider.Request
}

func (f *fakeGenerator) Configured() bool { return f.configured }

func (f *fakeGenerator) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.got = req
	if f.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llmprovider.Response{Content: llmprovider.TextMessage(llmprovider.RoleAssistant, f.reply)}, nil
}

func TestBuildRequest(t *testing.T) {
	req := BuildRequest([]memory.Message{
		{Role: memory.RoleSystem, Content: "be nice"},
		{Role: memory.RoleUser, Content: "list my todos"},
		{Role: memory.RoleAssistant, Content: `{"type":"assistant","action":"getAllTodos","params":{}}`},
		{Role: memory.RoleObservation, Content: `{"action":"getAllTodos","success":true}`},
	})

	sys := llmprovider.TextMessage(llmprovider.RoleSystem, "be nice")
	want := &llmprovider.Request{
		SystemInstruction: &sys,
		ResponseFormat:    llmprovider.ResponseFormatJSONObject,
		Messages: []llmprovider.Message{
			llmprovider.TextMessage(llmprovider.RoleUser, `{"type":"user","user":"list my todos"}`),
			llmprovider.TextMessage(llmprovider.RoleAssistant, `{"type":"assistant","action":"getAllTodos","params":{}}`),
			llmprovider.TextMessage(llmprovider.RoleUser, `{"type":"assistant","message":"Observation: {\"action\":\"getAllTodos\",\"success\":true}"}`),
		},
	}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Errorf("BuildRequest() mismatch (-want +got):\n%s", diff)
	}
}

func TestSend(t *testing.T) {
	ctx := context.Background()
	msgs := []memory.Message{{Role: memory.RoleUser, Content: "hi"}}

	t.Run("ok", func(t *testing.T) {
		gen := &fakeGenerator{configured: true, reply: `{"type":"assistant","message":"OUTPUT: hi boss"}`}
		g := New(gen, log.NewNop(), Config{})

		got, err := g.Send(ctx, msgs)
		require.NoError(t, err)
		assert.Equal(t, `{"type":"assistant","message":"OUTPUT: hi boss"}`, got)
		assert.Equal(t, 0.7, gen.got.Temperature)
		assert.Equal(t, llmprovider.ResponseFormatJSONObject, gen.got.ResponseFormat)
	})

	t.Run("unavailable", func(t *testing.T) {
		g := New(&fakeGenerator{}, log.NewNop(), Config{})
		assert.False(t, g.Available())

		_, err := g.Send(ctx, msgs)
		assert.ErrorIs(t, err, ErrGatewayUnavailable)

		_, err = New(nil, log.NewNop(), Config{}).Send(ctx, msgs)
		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})

	t.Run("provider failure", func(t *testing.T) {
		g := New(&fakeGenerator{configured: true, err: llmprovider.ErrAllProvidersFailed}, log.NewNop(), Config{})

		_, err := g.Send(ctx, msgs)
		assert.ErrorIs(t, err, ErrGatewayCallFailure)
		assert.ErrorIs(t, err, llmprovider.ErrAllProvidersFailed)
	})

	t.Run("timeout", func(t *testing.T) {
		g := New(&fakeGenerator{configured: true, wait: true}, log.NewNop(), Config{Timeout: 20 * time.Millisecond})

		_, err := g.Send(ctx, msgs)
		assert.ErrorIs(t, err, ErrGatewayCallFailure)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}
