package tools

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/agent"
	"github.com/Sajidddd11/telegramtodo/internal/model"
)

// priority words the model sometimes sends instead of numbers.
var priorityWords = map[string]int{
	"high":   9,
	"medium": 6,
	"low":    3,
}

func stringParam(params map[string]interface{}, key string) (string, bool) {
	v, ok := params[key]
	if !ok || v == nil {
		return "", false
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return fmt.Sprint(x), true
	}
}

func optionalString(params map[string]interface{}, key string) *string {
	s, ok := stringParam(params, key)
	if !ok {
		return nil
	}
	return &s
}

// intParam reads a number. Unreadable values come back as nil and are left
// to the use case's priority defaulting.
func intParam(params map[string]interface{}, key string) *int {
	v, ok := params[key]
	if !ok || v == nil {
		return nil
	}
	var n int
	switch x := v.(type) {
	case float64:
		n = int(x)
	case int:
		n = x
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		if w, ok := priorityWords[s]; ok {
			n = w
			break
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		n = i
	default:
		return nil
	}
	return &n
}

func boolParam(params map[string]interface{}, key string) (*bool, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return nil, nil
	}
	var b bool
	switch x := v.(type) {
	case bool:
		b = x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "yes", "done", "completed", "1":
			b = true
		case "false", "no", "pending", "0":
			b = false
		default:
			return nil, fmt.Errorf("%w: %s must be a boolean", agent.ErrInvalidParams, key)
		}
	case float64:
		b = x != 0
	default:
		return nil, fmt.Errorf("%w: %s must be a boolean", agent.ErrInvalidParams, key)
	}
	return &b, nil
}

// todoView is how a todo is shown to the model.
type todoView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	IsCompleted   bool   `json:"is_completed"`
	Priority      int    `json:"priority"`
	PriorityLabel string `json:"priority_label"`
	Deadline      string `json:"deadline"`
	DeadlineLocal string `json:"deadline_local"`
}

func newView(t model.Todo, loc *time.Location) todoView {
	return todoView{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		IsCompleted:   t.Completed,
		Priority:      t.Priority,
		PriorityLabel: model.PriorityLabel(t.Priority),
		Deadline:      t.Deadline.UTC().Format(time.RFC3339),
		DeadlineLocal: t.Deadline.In(loc).Format(time.RFC3339),
	}
}

func newViews(todos []model.Todo, loc *time.Location) []todoView {
	out := make([]todoView, len(todos))
	for i, t := range todos {
		out[i] = newView(t, loc)
	}
	return out
}

func schema(props map[string]interface{}, required ...string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func prop(typ, desc string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": desc}
}
