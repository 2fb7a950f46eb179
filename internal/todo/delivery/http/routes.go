package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Sajidddd11/telegramtodo/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
// Every route requires a bearer token.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	todos := rg.Group("", mw.Auth())
	{
		todos.POST("", h.Create)
		todos.GET("", h.List)
		todos.GET("/:id", h.Detail)
		todos.PUT("/:id", h.Update)
		todos.DELETE("/:id", h.Delete)
	}
}
