package agent

import (
	"encoding/json"
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/model"
)

// ErrorKind classifies a failed action.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindAmbiguous     ErrorKind = "ambiguous_reference"
	KindUnknownAction ErrorKind = "unknown_action"
	KindStore         ErrorKind = "store_unavailable"
	KindTimeout       ErrorKind = "timeout"
)

// Observation is the result of one action, fed back to the model.
type Observation struct {
	Action   string            `json:"action"`
	Success  bool              `json:"success"`
	Data     interface{}       `json:"data,omitempty"`
	Error    *ObservationError `json:"error,omitempty"`
	Attempts int               `json:"-"`
}

type ObservationError struct {
	Kind       ErrorKind   `json:"kind"`
	Message    string      `json:"message"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Candidate is a todo offered to the model when it must pick an id.
type Candidate struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"is_completed"`
	Deadline  time.Time `json:"deadline"`
}

// Fatal reports whether the turn cannot continue after this observation.
// Store outages and timeouts end the turn once retries are used up.
func (o Observation) Fatal() bool {
	return o.Error != nil && (o.Error.Kind == KindStore || o.Error.Kind == KindTimeout)
}

// ErrorKind returns the failure kind, or "" on success.
func (o Observation) ErrorKind() string {
	if o.Error == nil {
		return ""
	}
	return string(o.Error.Kind)
}

// JSON returns the wire form of the observation.
func (o Observation) JSON() []byte {
	b, err := json.Marshal(o)
	if err != nil {
		fallback, _ := json.Marshal(Observation{
			Action: o.Action,
			Error:  &ObservationError{Kind: KindStore, Message: "result could not be encoded"},
		})
		return fallback
	}
	return b
}

func success(action string, data interface{}) Observation {
	return Observation{Action: action, Success: true, Data: data}
}

func failure(action string, kind ErrorKind, msg string) Observation {
	return Observation{Action: action, Error: &ObservationError{Kind: kind, Message: msg}}
}

func toCandidates(todos []model.Todo) []Candidate {
	out := make([]Candidate, len(todos))
	for i, t := range todos {
		out[i] = Candidate{ID: t.ID, Title: t.Title, Completed: t.Completed, Deadline: t.Deadline}
	}
	return out
}
