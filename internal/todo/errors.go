package todo

import "errors"

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrIDRequired      = errors.New("todoId is required")
	ErrNothingToUpdate = errors.New("no fields to update")
	ErrInvalidDeadline = errors.New("deadline is not a recognizable date")
	ErrNotFound        = errors.New("todo not found or does not belong to the user")
	ErrStore           = errors.New("todo store unavailable")
)

// IsValidation reports whether err is caused by bad caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrIDRequired) ||
		errors.Is(err, ErrNothingToUpdate) ||
		errors.Is(err, ErrInvalidDeadline)
}
