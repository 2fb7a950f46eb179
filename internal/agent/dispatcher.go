package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/agent/observability"
	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
	pkgLog "github.com/Sajidddd11/telegramtodo/pkg/log"
)

// DispatcherConfig bounds each action.
type DispatcherConfig struct {
	ActionTimeout time.Duration
	MaxRetries    int
	RetryDelay    time.Duration
}

// Dispatcher executes model-requested actions for one user at a time.
type Dispatcher struct {
	registry *ToolRegistry
	todos    todo.UseCase
	obs      observability.Observer
	l        pkgLog.Logger
	cfg      DispatcherConfig
}

// NewDispatcher creates a Dispatcher. todos is used to list candidates when a
// targeted action arrives without an id.
func NewDispatcher(registry *ToolRegistry, todos todo.UseCase, obs observability.Observer, l pkgLog.Logger, cfg DispatcherConfig) *Dispatcher {
	if cfg.ActionTimeout <= 0 {
		cfg.ActionTimeout = DefaultActionTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if obs == nil {
		obs = observability.Nop{}
	}
	return &Dispatcher{registry: registry, todos: todos, obs: obs, l: l, cfg: cfg}
}

// Execute runs one action for sc.UserID and always returns an Observation.
func (d *Dispatcher) Execute(ctx context.Context, sc model.Scope, name string, params map[string]interface{}) Observation {
	start := time.Now()
	obs := d.execute(ctx, sc, name, params)

	d.obs.ActionDispatched(ctx, observability.ActionCall{
		UserID:    sc.UserID,
		Action:    name,
		OK:        obs.Success,
		ErrorKind: obs.ErrorKind(),
		Attempts:  obs.Attempts,
		Duration:  time.Since(start),
	})
	return obs
}

func (d *Dispatcher) execute(ctx context.Context, sc model.Scope, name string, params map[string]interface{}) Observation {
	tool, ok := d.registry.Get(name)
	if !ok {
		return failure(name, KindUnknownAction, fmt.Sprintf(msgUnknownAction, name, d.registry.Names()))
	}

	params = scrub(params)

	if targeted, ok := tool.(TargetedTool); ok && !hasValue(params, targeted.TargetParam()) {
		return d.disambiguate(ctx, sc, name)
	}

	var (
		result   interface{}
		err      error
		attempts int
	)
	for attempt := 0; attempt <= d.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			d.l.Warnf(ctx, "agent.Dispatcher: retrying %s (attempt %d): %v", name, attempt+1, err)
			if !sleep(ctx, time.Duration(attempt)*d.cfg.RetryDelay) {
				err = ctx.Err()
				break
			}
		}

		attempts++
		result, err = d.call(ctx, sc, tool, params)
		if err == nil || !transient(err) {
			break
		}
	}

	if err != nil {
		obs := d.classify(name, err)
		obs.Attempts = attempts
		return obs
	}

	obs := success(name, result)
	obs.Attempts = attempts
	return obs
}

// call runs the tool under the per-action timeout.
func (d *Dispatcher) call(ctx context.Context, sc model.Scope, tool Tool, params map[string]interface{}) (interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.ActionTimeout)
	defer cancel()
	return tool.Execute(ctx, sc, params)
}

// disambiguate lists the user's todos instead of guessing which one was meant.
func (d *Dispatcher) disambiguate(ctx context.Context, sc model.Scope, name string) Observation {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.ActionTimeout)
	defer cancel()

	todos, err := d.todos.List(ctx, sc)
	if err != nil {
		obs := d.classify(name, err)
		obs.Attempts = 1
		return obs
	}

	msg := fmt.Sprintf(msgAmbiguous, name)
	if len(todos) == 0 {
		msg = fmt.Sprintf(msgNoCandidates, name)
	}
	return Observation{
		Action:   name,
		Attempts: 1,
		Error: &ObservationError{
			Kind:       KindAmbiguous,
			Message:    msg,
			Candidates: toCandidates(todos),
		},
	}
}

func (d *Dispatcher) classify(name string, err error) Observation {
	switch {
	case errors.Is(err, ErrInvalidParams), todo.IsValidation(err):
		return failure(name, KindValidation, err.Error())
	case errors.Is(err, todo.ErrNotFound):
		return failure(name, KindNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return failure(name, KindTimeout, msgTimeout)
	default:
		return failure(name, KindStore, msgStore)
	}
}

// transient reports whether err may succeed on retry.
func transient(err error) bool {
	if errors.Is(err, ErrInvalidParams) || todo.IsValidation(err) || errors.Is(err, todo.ErrNotFound) {
		return false
	}
	return !errors.Is(err, context.Canceled)
}

// sleep waits for d or until ctx is done. It reports whether the full wait elapsed.
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

// scrub drops identity parameters so the model cannot act as another user,
// and accepts "id" as an alias of "todoId".
func scrub(params map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(params))
	for k, v := range params {
		out[k] = v
	}
	for _, k := range reservedParams {
		delete(out, k)
	}
	if _, ok := out[ParamTodoID]; !ok {
		if id, ok := out["id"]; ok {
			out[ParamTodoID] = id
		}
	}
	delete(out, "id")
	return out
}

func hasValue(params map[string]interface{}, key string) bool {
	v, ok := params[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}
