package sqlite

import (
	"strings"
	"time"

	repo "github.com/Sajidddd11/telegramtodo/internal/todo/repository"
)

// timeLayout has a fixed-width fraction so stored values sort chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const todoColumns = `id, user_id, title, description, is_completed, priority, deadline, created_at, updated_at`

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// likeEscaper makes LIKE metacharacters match literally under ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListFilter builds the WHERE clause + args for ListTodos.
// Query matches a substring of title or description. SQLite's LIKE folds
// ASCII case only.
func buildListFilter(opt repo.ListTodosOptions) (string, []any) {
	if opt.Query == "" {
		return "user_id = ?", []any{opt.UserID}
	}
	pattern := "%" + likeEscaper.Replace(opt.Query) + "%"
	return `user_id = ? AND (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`,
		[]any{opt.UserID, pattern, pattern}
}

// buildUpdateQuery builds the SET clause + args for UpdateTodo.
// Only non-nil fields are written; updated_at is always refreshed.
func (r *implRepository) buildUpdateQuery(opt repo.UpdateTodoOptions) (string, []any) {
	var sets []string
	var args []any

	if opt.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *opt.Title)
	}
	if opt.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *opt.Description)
	}
	if opt.Completed != nil {
		sets = append(sets, "is_completed = ?")
		args = append(args, boolToInt(*opt.Completed))
	}
	if opt.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *opt.Priority)
	}
	if opt.Deadline != nil {
		sets = append(sets, "deadline = ?")
		args = append(args, formatTime(*opt.Deadline))
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(opt.Now))

	return strings.Join(sets, ", "), args
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
