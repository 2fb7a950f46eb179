package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sajidddd11/telegramtodo/internal/agent/orchestrator"
	"github.com/Sajidddd11/telegramtodo/internal/middleware"
	"github.com/Sajidddd11/telegramtodo/pkg/response"
)

var errAssistantUnavailable = errors.New("AI assistant is not configured")

// Simulate godoc
// @Summary     Send a message to the assistant
// @Description Runs one assistant turn for the caller and returns the reply.
// @Tags        AI
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body simulateReq true "Message"
// @Success     200 {object} simulateResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Assistant unavailable"
// @Router      /api/v1/ai/simulate [POST]
func (h *handler) Simulate(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := middleware.GetScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req simulateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	if !h.assistant.Available() {
		response.ServiceUnavailable(c, errAssistantUnavailable)
		return
	}

	res, err := h.assistant.ProcessQuery(ctx, sc, req.Message)
	if err != nil {
		if errors.Is(err, orchestrator.ErrEmptyQuery) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err)
			return
		}
		h.l.Errorf(ctx, "agent.delivery.http.Simulate: %v", err)
		response.InternalError(c, err)
		return
	}

	h.l.Infof(ctx, "agent.delivery.http.Simulate: user=%s state=%s iterations=%d", sc.UserID, res.State, res.Iterations)
	response.OK(c, simulateResp{
		Reply:      res.Reply,
		State:      string(res.State),
		Reason:     res.Reason,
		Iterations: res.Iterations,
		Actions:    res.Actions,
	})
}

// Status godoc
// @Summary     Assistant status
// @Tags        AI
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} statusResp
// @Router      /api/v1/ai/status [GET]
func (h *handler) Status(c *gin.Context) {
	sc, ok := middleware.GetScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	st := h.assistant.Stats(sc.UserID)
	response.OK(c, statusResp{
		Enabled:   h.assistant.Available(),
		Providers: h.providers,
		Memory: memoryStatus{
			Messages:      st.Messages,
			HasSystem:     st.HasSystem,
			MaxHistory:    st.MaxHistory,
			Conversations: st.Conversations,
		},
	})
}

// Reset godoc
// @Summary     Clear the caller's conversation
// @Tags        AI
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} resetResp
// @Router      /api/v1/ai/reset [POST]
func (h *handler) Reset(c *gin.Context) {
	sc, ok := middleware.GetScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	h.assistant.Reset(sc.UserID)
	h.l.Infof(c.Request.Context(), "agent.delivery.http.Reset: cleared conversation of user=%s", sc.UserID)
	response.OK(c, resetResp{UserID: sc.UserID})
}
