package persona

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/model"
)

var trailingPunct = regexp.MustCompile(`([.!?])$`)

// Chooser returns an index in [0, n).
type Chooser func(n int) int

// Config configures a Sanitizer. Zero values fall back to the defaults.
type Config struct {
	Token    string
	Palette  []string
	Location *time.Location
	Chooser  Chooser
}

// Sanitizer finalizes model text for the user and renders task lists.
type Sanitizer struct {
	token   string
	palette []string
	loc     *time.Location
	choose  Chooser
	tokenRe *regexp.Regexp
}

// New creates a Sanitizer.
func New(cfg Config) *Sanitizer {
	s := &Sanitizer{
		token:   cfg.Token,
		palette: cfg.Palette,
		loc:     cfg.Location,
		choose:  cfg.Chooser,
	}
	if s.token == "" {
		s.token = DefaultToken
	}
	s.tokenRe = tokenPattern(s.token)
	if len(s.palette) == 0 {
		s.palette = DefaultPalette
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.choose == nil {
		s.choose = rand.IntN
	}
	return s
}

// Token returns the persona address token.
func (s *Sanitizer) Token() string {
	return s.token
}

// Location returns the display timezone.
func (s *Sanitizer) Location() *time.Location {
	return s.loc
}

// Sanitize strips markup, makes sure the persona token appears once and the
// text carries one palette symbol. Running it twice adds nothing the second time.
func (s *Sanitizer) Sanitize(text string) string {
	out := strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(out, "OUTPUT:"); ok {
		out = strings.TrimSpace(rest)
	}
	for _, tok := range markupTokens {
		out = strings.ReplaceAll(out, tok, "")
	}
	out = strings.TrimSpace(out)
	if out == "" {
		out = emptyFallback
	}

	if !s.tokenRe.MatchString(out) {
		if trailingPunct.MatchString(out) {
			out = trailingPunct.ReplaceAllString(out, ", "+s.token+"$1")
		} else {
			out += ", " + s.token
		}
	}

	if !s.hasSymbol(out) {
		out += " " + s.palette[s.choose(len(s.palette))]
	}
	return out
}

// tokenPattern matches token as a whole word, ignoring case. Boundaries are
// spelled out instead of \b so tokens that start or end with punctuation work.
func tokenPattern(token string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(token) + `(?:$|[^\p{L}\p{N}_])`)
}

func (s *Sanitizer) hasSymbol(text string) bool {
	for _, sym := range s.palette {
		if strings.Contains(text, sym) {
			return true
		}
	}
	return false
}

// FormatTime renders t in the display timezone.
func (s *Sanitizer) FormatTime(t time.Time) string {
	return t.In(s.loc).Format(DisplayLayout)
}

// FormatTask renders one numbered entry of a task list.
func (s *Sanitizer) FormatTask(index int, t model.Todo) string {
	mark := pendingMark
	if t.Completed {
		mark = completedMark
	}
	return fmt.Sprintf("%d. %s\n   • Deadline: %s\n   • Priority: %s (%d)\n   • Completed: %s",
		index, t.Title, s.FormatTime(t.Deadline), model.PriorityLabel(t.Priority), t.Priority, mark)
}

// FormatTaskList renders todos as a 1-based list separated by blank lines.
func (s *Sanitizer) FormatTaskList(todos []model.Todo) string {
	entries := make([]string, len(todos))
	for i, t := range todos {
		entries[i] = s.FormatTask(i+1, t)
	}
	return strings.Join(entries, "\n\n")
}

// ListReply is the complete sanitized answer to "list my todos".
func (s *Sanitizer) ListReply(todos []model.Todo) string {
	if len(todos) == 0 {
		return fmt.Sprintf(emptyList, s.token)
	}
	return s.Sanitize(fmt.Sprintf(listHeader, s.token) + "\n\n" + s.FormatTaskList(todos))
}
