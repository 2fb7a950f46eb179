package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
	"github.com/Sajidddd11/telegramtodo/internal/todo/repository"
)

// normalizePriority keeps in-band values and replaces anything else with the default.
func normalizePriority(p *int) int {
	if p == nil || !model.ValidPriority(*p) {
		return model.PriorityDefault
	}
	return *p
}

// normalizeDeadline converts a caller-supplied deadline to canonical UTC.
// An empty value means one calendar day after now.
func (uc *implUseCase) normalizeDeadline(raw string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return now.AddDate(0, 0, 1).UTC(), nil
	}
	res, err := uc.dateMath.Resolve(raw, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", todo.ErrInvalidDeadline, raw)
	}
	return res.Time.UTC(), nil
}

// mapRepoError translates storage errors into domain errors.
func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return todo.ErrNotFound
	}
	return fmt.Errorf("%w: %v", todo.ErrStore, err)
}
