package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/agent/gateway"
	"github.com/Sajidddd11/telegramtodo/internal/agent/memory"
	"github.com/Sajidddd11/telegramtodo/internal/agent/observability"
	"github.com/Sajidddd11/telegramtodo/internal/agent/protocol"
	"github.com/Sajidddd11/telegramtodo/internal/model"
)

// ErrEmptyQuery is returned for blank input.
var ErrEmptyQuery = errors.New("query is empty")

// turn is the bookkeeping of one ProcessQuery call.
type turn struct {
	sc         model.Scope
	start      time.Time
	state      State
	iterations int
	actions    []string
}

// ProcessQuery runs one turn for sc.UserID and returns the sanitized reply.
// Turns of the same user are serialized. Model and store failures end the turn
// in StateFailed with a fallback reply; the error is only set for invalid input.
func (o *Orchestrator) ProcessQuery(ctx context.Context, sc model.Scope, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, ErrEmptyQuery
	}

	unlock := o.memory.Lock(sc.UserID)
	defer unlock()

	t := &turn{sc: sc, start: time.Now(), state: StateAwaitingModel, actions: []string{}}
	o.obs.TurnStarted(ctx, observability.TurnStart{UserID: sc.UserID, Channel: string(sc.Channel)})

	o.memory.SetSystem(sc.UserID, o.builder.Build(sc.UserID, o.titles(ctx, sc)))
	o.memory.Append(sc.UserID, memory.Message{Role: memory.RoleUser, Content: query})

	if !o.Available() {
		return o.fail(ctx, t, ReasonGatewayUnavailable, FallbackUnavailable), nil
	}

	for t.iterations < o.cfg.MaxIterations {
		t.iterations++
		t.state = StateAwaitingModel

		callStart := time.Now()
		raw, err := o.callModel(ctx, t)
		if err != nil {
			if errors.Is(err, gateway.ErrGatewayUnavailable) {
				return o.fail(ctx, t, ReasonGatewayUnavailable, FallbackUnavailable), nil
			}
			reason := ReasonGatewayFailure
			if ctx.Err() != nil {
				reason = ReasonCanceled
			}
			return o.fail(ctx, t, reason, FallbackError), nil
		}

		reply := protocol.Parse(raw)
		o.obs.ModelCalled(ctx, observability.ModelCall{
			UserID:    sc.UserID,
			Iteration: t.iterations,
			Shape:     shapeOf(reply),
			Duration:  time.Since(callStart),
		})

		switch r := reply.(type) {
		case protocol.Output:
			o.memory.Append(sc.UserID, memory.Message{Role: memory.RoleAssistant, Content: raw})
			return o.done(ctx, t, r.Text), nil

		case protocol.RawText:
			// keep history in protocol form even when the model drifted
			o.memory.Append(sc.UserID, memory.Message{Role: memory.RoleAssistant, Content: protocol.EncodeOutput(r.Text)})
			return o.done(ctx, t, r.Text), nil

		case protocol.Plan, protocol.ObservationEcho:
			o.memory.Append(sc.UserID, memory.Message{Role: memory.RoleAssistant, Content: raw})

		case protocol.Action:
			o.memory.Append(sc.UserID, memory.Message{Role: memory.RoleAssistant, Content: raw})
			t.state = StateDispatching
			t.actions = append(t.actions, r.Name)

			obs := o.dispatcher.Execute(ctx, sc, r.Name, r.Params)
			o.memory.Append(sc.UserID, memory.Message{Role: memory.RoleObservation, Content: string(obs.JSON())})
			if obs.Fatal() {
				o.l.Errorf(ctx, "%s: action %s failed: %s", LogPrefixProcessQuery, r.Name, obs.ErrorKind())
				return o.fail(ctx, t, ReasonActionFailure, FallbackError), nil
			}
		}
	}

	o.l.Warnf(ctx, "%s: no final answer after %d iterations for user %s", LogPrefixProcessQuery, t.iterations, sc.UserID)
	return o.fail(ctx, t, ReasonLoopExhausted, FallbackExhausted), nil
}

// callModel sends the transcript, retrying failed calls with linear backoff.
func (o *Orchestrator) callModel(ctx context.Context, t *turn) (string, error) {
	var err error
	for attempt := 0; attempt <= o.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			o.l.Warnf(ctx, "%s: retrying model call (attempt %d): %v", LogPrefixCallModel, attempt+1, err)
			if !sleep(ctx, time.Duration(attempt)*o.cfg.RetryDelay) {
				return "", ctx.Err()
			}
		}

		start := time.Now()
		var raw string
		raw, err = o.gateway.Send(ctx, o.memory.Transcript(t.sc.UserID))
		if err == nil {
			return raw, nil
		}

		o.obs.ModelCalled(ctx, observability.ModelCall{
			UserID:    t.sc.UserID,
			Iteration: t.iterations,
			Duration:  time.Since(start),
			Err:       err,
		})
		if errors.Is(err, gateway.ErrGatewayUnavailable) || ctx.Err() != nil {
			return "", err
		}
	}
	return "", err
}

// titles lists the user's todo titles for the system instruction. A store
// failure only costs the titles; the model can still call getAllTodos.
func (o *Orchestrator) titles(ctx context.Context, sc model.Scope) []string {
	if o.todos == nil {
		return nil
	}
	todos, err := o.todos.List(ctx, sc)
	if err != nil {
		o.l.Warnf(ctx, "%s: list titles: %v", LogPrefixProcessQuery, err)
		return nil
	}
	titles := make([]string, len(todos))
	for i, td := range todos {
		titles[i] = td.Title
	}
	return titles
}

func (o *Orchestrator) done(ctx context.Context, t *turn, text string) Result {
	t.state = StateDone
	return o.finish(ctx, t, "", o.persona.Sanitize(text))
}

// fail closes the turn with a fallback reply. The fallback is recorded as a
// final answer so the next turn starts from a well formed history.
func (o *Orchestrator) fail(ctx context.Context, t *turn, reason, fallback string) Result {
	t.state = StateFailed
	reply := o.persona.Sanitize(fallback)
	o.memory.Append(t.sc.UserID, memory.Message{Role: memory.RoleAssistant, Content: protocol.EncodeOutput(reply)})
	return o.finish(ctx, t, reason, reply)
}

func (o *Orchestrator) finish(ctx context.Context, t *turn, reason, reply string) Result {
	o.obs.TurnFinished(ctx, observability.TurnEnd{
		UserID:     t.sc.UserID,
		State:      string(t.state),
		Reason:     reason,
		Iterations: t.iterations,
		Actions:    len(t.actions),
		Duration:   time.Since(t.start),
	})
	return Result{
		Reply:      reply,
		State:      t.state,
		Reason:     reason,
		Iterations: t.iterations,
		Actions:    t.actions,
	}
}

func shapeOf(r protocol.Reply) string {
	switch r.(type) {
	case protocol.Plan:
		return "plan"
	case protocol.ObservationEcho:
		return "observation"
	case protocol.Action:
		return "action"
	case protocol.Output:
		return "output"
	default:
		return "raw"
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
