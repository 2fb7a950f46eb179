package persona

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sajidddd11/telegramtodo/internal/model"
)

func fixed(i int) Chooser {
	return func(int) int { return i }
}

func countSymbols(text string) int {
	n := 0
	for _, sym := range DefaultPalette {
		n += strings.Count(text, sym)
	}
	return n
}

func TestSanitize(t *testing.T) {
	s := New(Config{Chooser: fixed(1)})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "adjoins punctuation", in: "Task created!", want: "Task created, boss! 👍"},
		{name: "no punctuation", in: "All set", want: "All set, boss 👍"},
		{name: "question", in: "Which one?", want: "Which one, boss? 👍"},
		{name: "strips markup", in: "**Done** with `milk_run` ### now.", want: "Done with milkrun  now, boss. 👍"},
		{name: "strips OUTPUT prefix", in: "OUTPUT: Hi there.", want: "Hi there, boss. 👍"},
		{name: "keeps existing token and symbol", in: "Sure thing Boss ✅", want: "Sure thing Boss ✅"},
		{name: "keeps symbol, adds token", in: "Added 📝", want: "Added 📝, boss"},
		{name: "token inside a word", in: "Embossed labels ordered.", want: "Embossed labels ordered, boss. 👍"},
		{name: "token as prefix", in: "Ask the bossman.", want: "Ask the bossman, boss. 👍"},
		{name: "token before punctuation", in: "Done, BOSS!", want: "Done, BOSS! 👍"},
		{name: "empty", in: "  ", want: "Okay, boss 👍"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Sanitize(tt.in))
		})
	}
}

func TestSanitize_CustomToken(t *testing.T) {
	s := New(Config{Token: "Dr. K", Chooser: fixed(0)})

	assert.Equal(t, "Dr. K is on it "+DefaultPalette[0], s.Sanitize("Dr. K is on it"))
	assert.Equal(t, "Call Dr. Kim, Dr. K. "+DefaultPalette[0], s.Sanitize("Call Dr. Kim."))
	// the dot in the token is literal
	assert.Equal(t, "Dr K is here, Dr. K "+DefaultPalette[0], s.Sanitize("Dr K is here"))
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{"Task created!", "hello", "Here you go.", "*bold* ok?", ""}

	for i := range DefaultPalette {
		s := New(Config{Chooser: fixed(i)})
		for _, in := range inputs {
			once := s.Sanitize(in)
			twice := s.Sanitize(once)
			assert.Equal(t, once, twice)
			assert.Equal(t, 1, strings.Count(strings.ToLower(twice), "boss"), twice)
			assert.Equal(t, 1, countSymbols(twice), twice)
		}
	}
}

func TestFormatTaskList(t *testing.T) {
	dhaka, err := time.LoadLocation("Asia/Dhaka")
	require.NoError(t, err)
	s := New(Config{Location: dhaka, Chooser: fixed(0)})

	todos := []model.Todo{
		{Title: "Buy milk", Priority: 9, Deadline: time.Date(2024, 5, 1, 9, 5, 0, 0, time.UTC)},
		{Title: "Gym", Priority: 5, Completed: true, Deadline: time.Date(2024, 5, 2, 18, 0, 0, 0, time.UTC)},
		{Title: "Read", Priority: 3, Deadline: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	want := "1. Buy milk\n   • Deadline: May 1, 2024, 03:05 PM\n   • Priority: High (9)\n   • Completed: ❌\n\n" +
		"2. Gym\n   • Deadline: May 3, 2024, 12:00 AM\n   • Priority: Medium (5)\n   • Completed: ✅\n\n" +
		"3. Read\n   • Deadline: December 31, 2024, 06:00 AM\n   • Priority: Low (3)\n   • Completed: ❌"

	assert.Equal(t, want, s.FormatTaskList(todos))
}

func TestListReply(t *testing.T) {
	s := New(Config{Chooser: fixed(0)})

	assert.Equal(t, "You don't have any tasks yet, boss! Would you like to create one? 📝", s.ListReply(nil))

	got := s.ListReply([]model.Todo{{Title: "Buy milk", Priority: 3}})
	assert.True(t, strings.HasPrefix(got, "Here are your tasks, boss!\n\n1. Buy milk"))
	assert.Equal(t, 1, countSymbols(got))
}
