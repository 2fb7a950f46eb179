package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sajidddd11/telegramtodo/internal/todo"
	"github.com/Sajidddd11/telegramtodo/pkg/response"
)

var (
	errUnauthenticated = errors.New("missing caller scope")
	errIDRequired      = errors.New("id is required")
)

// mapError translates use-case errors into HTTP responses.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case todo.IsValidation(err):
		response.ErrorWithStatus(c, http.StatusBadRequest, err)
	case errors.Is(err, todo.ErrNotFound):
		response.NotFound(c, todo.ErrNotFound)
	default:
		response.InternalError(c, err)
	}
}
