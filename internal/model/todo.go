package model

import "time"

// Priority bands. Values outside [PriorityMin, PriorityMax] are replaced by PriorityDefault.
const (
	PriorityMin     = 1
	PriorityMax     = 10
	PriorityDefault = 3

	PriorityHighAbove  = 8 // priority > 8
	PriorityMediumFrom = 5 // 5 <= priority <= 8
)

// Todo is a single task record owned by one user.
type Todo struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"is_completed"`
	Priority    int       `json:"priority"`
	Deadline    time.Time `json:"deadline"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PriorityLabel returns High, Medium or Low for a numeric priority.
func PriorityLabel(p int) string {
	switch {
	case p > PriorityHighAbove:
		return "High"
	case p >= PriorityMediumFrom:
		return "Medium"
	default:
		return "Low"
	}
}

// ValidPriority reports whether p lies inside the accepted band.
func ValidPriority(p int) bool {
	return p >= PriorityMin && p <= PriorityMax
}
