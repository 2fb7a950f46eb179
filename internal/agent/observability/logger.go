package observability

import (
	"context"

	pkgLog "github.com/Sajidddd11/telegramtodo/pkg/log"
)

// Logger writes events as structured log lines.
type Logger struct {
	l pkgLog.Logger
}

func NewLogger(l pkgLog.Logger) *Logger {
	return &Logger{l: l}
}

func (o *Logger) TurnStarted(ctx context.Context, e TurnStart) {
	o.l.Debug(ctx, "agent turn started", "user_id", e.UserID, "channel", e.Channel)
}

func (o *Logger) TurnFinished(ctx context.Context, e TurnEnd) {
	if e.Reason != "" {
		o.l.Warn(ctx, "agent turn failed",
			"user_id", e.UserID,
			"state", e.State,
			"reason", e.Reason,
			"iterations", e.Iterations,
			"actions", e.Actions,
			"duration_ms", e.Duration.Milliseconds(),
		)
		return
	}
	o.l.Info(ctx, "agent turn finished",
		"user_id", e.UserID,
		"state", e.State,
		"iterations", e.Iterations,
		"actions", e.Actions,
		"duration_ms", e.Duration.Milliseconds(),
	)
}

func (o *Logger) ModelCalled(ctx context.Context, e ModelCall) {
	if e.Err != nil {
		o.l.Warn(ctx, "model call failed",
			"user_id", e.UserID,
			"iteration", e.Iteration,
			"duration_ms", e.Duration.Milliseconds(),
			"error", e.Err.Error(),
		)
		return
	}
	o.l.Debug(ctx, "model replied",
		"user_id", e.UserID,
		"iteration", e.Iteration,
		"shape", e.Shape,
		"duration_ms", e.Duration.Milliseconds(),
	)
}

func (o *Logger) ActionDispatched(ctx context.Context, e ActionCall) {
	o.l.Info(ctx, "action dispatched",
		"user_id", e.UserID,
		"action", e.Action,
		"ok", e.OK,
		"error_kind", e.ErrorKind,
		"attempts", e.Attempts,
		"duration_ms", e.Duration.Milliseconds(),
	)
}
