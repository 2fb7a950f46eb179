package log

import (
	"context"
	"fmt"
)

type requestIDKey struct{}

// WithRequestID stores a request id that every log line written with ctx will carry.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// message and fields split Info(ctx, "msg", "k1", v1, "k2", v2) into a message and
// key/value pairs. Anything else is concatenated the way fmt.Sprint does.
func message(arg []any) string {
	if isStructured(arg) {
		return arg[0].(string)
	}
	return fmt.Sprint(arg...)
}

func fields(arg []any) []any {
	if isStructured(arg) {
		return arg[1:]
	}
	return nil
}

func isStructured(arg []any) bool {
	if len(arg) < 3 || len(arg)%2 == 0 {
		return false
	}
	if _, ok := arg[0].(string); !ok {
		return false
	}
	for i := 1; i < len(arg); i += 2 {
		if _, ok := arg[i].(string); !ok {
			return false
		}
	}
	return true
}
