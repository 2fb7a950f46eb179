package log

import (
	"context"
	"errors"
	"testing"
)

func TestMessageAndFields(t *testing.T) {
	tests := []struct {
		name       string
		arg        []any
		wantMsg    string
		wantFields int
	}{
		{"plain", []any{"hello"}, "hello", 0},
		{"concat", []any{"failed: ", errors.New("boom")}, "failed: boom", 0},
		{"key values", []any{"LLM generation successful", "provider", "openai", "model", "gpt-4o-mini"}, "LLM generation successful", 4},
		{"non string key", []any{"msg", 1, 2}, "msg1 2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := message(tt.arg); got != tt.wantMsg {
				t.Errorf("message() = %q, want %q", got, tt.wantMsg)
			}
			if got := len(fields(tt.arg)); got != tt.wantFields {
				t.Errorf("len(fields()) = %d, want %d", got, tt.wantFields)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestID(ctx); got != "req-1" {
		t.Errorf("RequestID() = %q, want req-1", got)
	}
	if got := RequestID(context.Background()); got != "" {
		t.Errorf("RequestID() on empty ctx = %q", got)
	}
}
