package usecase

import (
	"time"

	"github.com/Sajidddd11/telegramtodo/internal/todo"
	"github.com/Sajidddd11/telegramtodo/internal/todo/repository"
	"github.com/Sajidddd11/telegramtodo/pkg/datemath"
	pkgLog "github.com/Sajidddd11/telegramtodo/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	dateMath *datemath.Parser
	now      func() time.Time
}

// New creates a new todo UseCase instance.
func New(l pkgLog.Logger, repo repository.Repository, dateMath *datemath.Parser) todo.UseCase {
	return &implUseCase{
		l:        l,
		repo:     repo,
		dateMath: dateMath,
		now:      time.Now,
	}
}
