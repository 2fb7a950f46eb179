package protocol

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// Parse decodes a model reply. It never fails: anything it cannot classify
// comes back as RawText.
func Parse(raw string) Reply {
	text := strings.TrimSpace(raw)
	if text == "" {
		return RawText{}
	}

	var env envelope
	if err := json.Unmarshal([]byte(extractJSON(text)), &env); err != nil {
		return RawText{Text: text}
	}

	if name := strings.TrimSpace(env.Action); name != "" {
		params := env.Params
		if params == nil {
			params = map[string]any{}
		}
		return Action{Name: name, Params: params}
	}

	if env.Message == nil {
		return RawText{Text: text}
	}

	msg := strings.TrimSpace(*env.Message)
	if body, ok := cutPrefix(msg, PrefixPlan); ok {
		return Plan{Text: body}
	}
	if body, ok := cutPrefix(msg, PrefixObservation); ok {
		return ObservationEcho{Text: body}
	}
	if body, ok := cutPrefix(msg, PrefixOutput); ok {
		return Output{Text: body}
	}
	return RawText{Text: msg}
}

// extractJSON strips markdown fences and surrounding chatter around a JSON object.
func extractJSON(text string) string {
	if m := fenceRe.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return text
	}
	return text[start : end+1]
}

// cutPrefix matches prefix case-insensitively and returns the trimmed rest.
func cutPrefix(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(s[len(prefix):]), true
}

// EncodeUser wraps a user query the way the model expects to see it.
func EncodeUser(query string) string {
	return mustMarshal(envelope{Type: typeUser, User: query})
}

// EncodeObservation wraps an observation payload as a synthetic assistant message.
func EncodeObservation(payload []byte) string {
	msg := PrefixObservation + " " + string(payload)
	return mustMarshal(envelope{Type: typeAssistant, Message: &msg})
}

// EncodeOutput builds a final-answer reply. It is used to close failed turns.
func EncodeOutput(text string) string {
	msg := PrefixOutput + " " + text
	return mustMarshal(envelope{Type: typeAssistant, Message: &msg})
}

func mustMarshal(env envelope) string {
	b, err := json.Marshal(env)
	if err != nil {
		// envelope only holds strings and plain maps
		panic(err)
	}
	return string(b)
}
