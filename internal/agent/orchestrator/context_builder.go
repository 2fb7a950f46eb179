package orchestrator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/agent"
	"github.com/Sajidddd11/telegramtodo/internal/agent/persona"
)

// ContextBuilder assembles the system instruction for a turn.
type ContextBuilder struct {
	loc     *time.Location
	token   string
	now     func() time.Time
	actions string
}

// NewContextBuilder creates a builder rendering times in loc.
// tools are listed, in order, as the actions the model may call.
func NewContextBuilder(loc *time.Location, token string, now func() time.Time, tools []agent.Tool) *ContextBuilder {
	if loc == nil {
		loc = time.UTC
	}
	if token == "" {
		token = persona.DefaultToken
	}
	if now == nil {
		now = time.Now
	}
	return &ContextBuilder{loc: loc, token: token, now: now, actions: describeActions(tools)}
}

// Build returns the system instruction for userID given the titles of their todos.
func (b *ContextBuilder) Build(userID string, titles []string) string {
	now := b.now().In(b.loc)

	// Monday-Sunday
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekStart := now.AddDate(0, 0, -(weekday - 1))
	weekEnd := weekStart.AddDate(0, 0, 6)

	list := noTasks
	if len(titles) > 0 {
		list = strings.Join(titles, ", ")
	}

	return fmt.Sprintf(systemPromptTemplate,
		now.Format(persona.DisplayLayout),
		b.loc.String(),
		gmtOffset(now),
		now.AddDate(0, 0, 1).Format(DateFormatDay),
		weekStart.Format(DateFormatISO),
		weekEnd.Format(DateFormatISO),
		userID,
		list,
		b.token,
		b.loc.String(),
		b.actions,
	)
}

// describeActions renders one entry per tool: its description followed by
// its parameters, required ones first.
func describeActions(tools []agent.Tool) string {
	if len(tools) == 0 {
		return "- none"
	}

	var sb strings.Builder
	for i, t := range tools {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "- %s: %s", t.Name(), t.Description())

		params := t.Parameters()
		props, _ := params["properties"].(map[string]interface{})
		if len(props) == 0 {
			sb.WriteString(" No params.")
			continue
		}

		required := map[string]bool{}
		reqNames, _ := params["required"].([]string)
		for _, name := range reqNames {
			required[name] = true
		}

		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Slice(names, func(a, b int) bool {
			if required[names[a]] != required[names[b]] {
				return required[names[a]]
			}
			return names[a] < names[b]
		})

		for _, name := range names {
			p, _ := props[name].(map[string]interface{})
			typ, _ := p["type"].(string)
			desc, _ := p["description"].(string)

			fmt.Fprintf(&sb, "\n    %s (%s", name, typ)
			if required[name] {
				sb.WriteString(", required")
			}
			sb.WriteByte(')')
			if desc != "" {
				fmt.Fprintf(&sb, ": %s", desc)
			}
		}
	}
	return sb.String()
}

// gmtOffset renders the zone offset of t as GMT+6, GMT-3:30 or GMT.
func gmtOffset(t time.Time) string {
	_, off := t.Zone()
	if off == 0 {
		return "GMT"
	}
	sign := "+"
	if off < 0 {
		sign = "-"
		off = -off
	}
	h, m := off/3600, (off%3600)/60
	if m == 0 {
		return fmt.Sprintf("GMT%s%d", sign, h)
	}
	return fmt.Sprintf("GMT%s%d:%02d", sign, h, m)
}
