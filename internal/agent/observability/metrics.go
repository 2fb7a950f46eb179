package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "telegramtodo"

// Metrics records events as Prometheus series.
type Metrics struct {
	Turns          *prometheus.CounterVec
	TurnLatency    prometheus.Histogram
	TurnIterations prometheus.Histogram
	ModelCalls     *prometheus.CounterVec
	ModelLatency   prometheus.Histogram
	Actions        *prometheus.CounterVec
	ActionLatency  *prometheus.HistogramVec
}

// NewMetrics registers the agent series on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Turns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_turns_total",
			Help:      "Agent turns by terminal state",
		}, []string{"state"}),

		TurnLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "agent_turn_duration_seconds",
			Help:      "Wall time of one agent turn",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}),

		TurnIterations: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "agent_turn_iterations",
			Help:      "Model round-trips per turn",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),

		ModelCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_model_calls_total",
			Help:      "Model calls by decoded reply shape or error",
		}, []string{"outcome"}),

		ModelLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "agent_model_call_duration_seconds",
			Help:      "Latency of one model call",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		}),

		Actions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_actions_total",
			Help:      "Dispatched task actions by name and outcome",
		}, []string{"action", "outcome"}),

		ActionLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "agent_action_duration_seconds",
			Help:      "Latency of one dispatched action, retries included",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
	}
}

func (m *Metrics) TurnStarted(context.Context, TurnStart) {}

func (m *Metrics) TurnFinished(_ context.Context, e TurnEnd) {
	m.Turns.WithLabelValues(e.State).Inc()
	m.TurnLatency.Observe(e.Duration.Seconds())
	m.TurnIterations.Observe(float64(e.Iterations))
}

func (m *Metrics) ModelCalled(_ context.Context, e ModelCall) {
	outcome := e.Shape
	if e.Err != nil {
		outcome = "error"
	}
	m.ModelCalls.WithLabelValues(outcome).Inc()
	m.ModelLatency.Observe(e.Duration.Seconds())
}

func (m *Metrics) ActionDispatched(_ context.Context, e ActionCall) {
	outcome := "ok"
	if !e.OK {
		outcome = e.ErrorKind
	}
	m.Actions.WithLabelValues(e.Action, outcome).Inc()
	m.ActionLatency.WithLabelValues(e.Action).Observe(e.Duration.Seconds())
}
