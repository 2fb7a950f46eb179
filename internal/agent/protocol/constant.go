package protocol

// Message prefixes.
const (
	PrefixPlan        = "PLAN:"
	PrefixObservation = "Observation:"
	PrefixOutput      = "OUTPUT:"
)

const (
	typeAssistant = "assistant"
	typeUser      = "user"
)
