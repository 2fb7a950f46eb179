package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Sajidddd11/telegramtodo/internal/middleware"
)

// RegisterRoutes mounts the AI endpoints behind Auth.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	ai := rg.Group("", mw.Auth())
	{
		ai.POST("/simulate", h.Simulate)
		ai.GET("/status", h.Status)
		ai.POST("/reset", h.Reset)
	}
}
