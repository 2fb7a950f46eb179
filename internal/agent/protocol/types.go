package protocol

// Reply is one decoded model reply. It is exactly one of Plan, ObservationEcho,
// Action, Output or RawText.
type Reply interface {
	isReply()
}

// Plan is the model narrating its next step.
type Plan struct {
	Text string
}

// ObservationEcho is the model restating a result. It carries no new data.
type ObservationEcho struct {
	Text string
}

// Action asks for one task operation.
type Action struct {
	Name   string
	Params map[string]any
}

// Output is the final answer for the user.
type Output struct {
	Text string
}

// RawText is anything that did not decode into a known shape.
// It is treated as a final answer.
type RawText struct {
	Text string
}

func (Plan) isReply()            {}
func (ObservationEcho) isReply() {}
func (Action) isReply()          {}
func (Output) isReply()          {}
func (RawText) isReply()         {}

// envelope is the wire form of every model reply.
type envelope struct {
	Type    string         `json:"type"`
	Message *string        `json:"message,omitempty"`
	Action  string         `json:"action,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
	User    string         `json:"user,omitempty"`
}
