package middleware

import (
	"github.com/Sajidddd11/telegramtodo/pkg/log"
	"github.com/Sajidddd11/telegramtodo/pkg/scope"
)

type Middleware struct {
	l          log.Logger
	jwtManager scope.Manager
}

func New(l log.Logger, jwtManager scope.Manager) Middleware {
	return Middleware{
		l:          l,
		jwtManager: jwtManager,
	}
}
