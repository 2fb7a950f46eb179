package observability

import (
	"context"
	"time"
)

// Observer receives structured events from the agent loop and the action dispatcher.
// Implementations must be safe for concurrent use.
type Observer interface {
	TurnStarted(ctx context.Context, e TurnStart)
	TurnFinished(ctx context.Context, e TurnEnd)
	ModelCalled(ctx context.Context, e ModelCall)
	ActionDispatched(ctx context.Context, e ActionCall)
}

type TurnStart struct {
	UserID  string
	Channel string
}

type TurnEnd struct {
	UserID     string
	State      string // DONE or FAILED
	Reason     string // why a turn failed, empty on success
	Iterations int
	Actions    int
	Duration   time.Duration
}

type ModelCall struct {
	UserID    string
	Iteration int
	Shape     string // decoded reply shape, empty on error
	Duration  time.Duration
	Err       error
}

type ActionCall struct {
	UserID    string
	Action    string
	OK        bool
	ErrorKind string
	Attempts  int
	Duration  time.Duration
}

// Nop discards every event.
type Nop struct{}

func (Nop) TurnStarted(context.Context, TurnStart)       {}
func (Nop) TurnFinished(context.Context, TurnEnd)        {}
func (Nop) ModelCalled(context.Context, ModelCall)       {}
func (Nop) ActionDispatched(context.Context, ActionCall) {}

// Multi fans every event out to several observers.
type Multi []Observer

func (m Multi) TurnStarted(ctx context.Context, e TurnStart) {
	for _, o := range m {
		o.TurnStarted(ctx, e)
	}
}

func (m Multi) TurnFinished(ctx context.Context, e TurnEnd) {
	for _, o := range m {
		o.TurnFinished(ctx, e)
	}
}

func (m Multi) ModelCalled(ctx context.Context, e ModelCall) {
	for _, o := range m {
		o.ModelCalled(ctx, e)
	}
}

func (m Multi) ActionDispatched(ctx context.Context, e ActionCall) {
	for _, o := range m {
		o.ActionDispatched(ctx, e)
	}
}
