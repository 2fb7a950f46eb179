package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sajidddd11/telegramtodo/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "TodoBot API is running"
	HealthVersion = "1.0.0"
	ServiceName   = "telegramtodo"
)

func healthBody(status string) gin.H {
	return gin.H{
		"status":  status,
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, healthBody("healthy"))
}

// readyCheck reports ready only when the todo store answers.
// @Summary Readiness Check
// @Description Check if the API and its store are ready to serve traffic
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} response.Resp "Store unreachable"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	if srv.ready == nil {
		response.OK(c, healthBody("ready"))
		return
	}
	if err := srv.ready(c.Request.Context()); err != nil {
		srv.l.Warnf(c.Request.Context(), "httpserver.readyCheck: %v", err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.Resp{
			ErrorCode: http.StatusServiceUnavailable,
			Message:   "not ready",
			Data:      healthBody("not_ready"),
		})
		return
	}
	response.OK(c, healthBody("ready"))
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API process is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, healthBody("alive"))
}
