package telegram

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Sajidddd11/telegramtodo/internal/middleware"
	pkgResponse "github.com/Sajidddd11/telegramtodo/pkg/response"
)

type linkReq struct {
	Code string `json:"code" binding:"required"`
}

type linkResp struct {
	ChatID int64  `json:"chat_id"`
	UserID string `json:"user_id"`
}

// HandleLink godoc
// @Summary     Link a Telegram chat
// @Description Redeems a code issued by /start so the chat shares the caller's todos.
// @Tags        Telegram
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body linkReq true "Link code"
// @Success     200 {object} linkResp
// @Failure     404 {object} pkgResponse.Resp "Unknown or expired code"
// @Router      /api/v1/telegram/link [POST]
func (h *handler) HandleLink(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := middleware.GetScope(c)
	if !ok {
		h.l.Warnf(ctx, "telegram handler: link: %v", errNoScope)
		pkgResponse.Unauthorized(c)
		return
	}

	var req linkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkgResponse.Error(c, err, nil)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	chatID, found := h.codes.Get(code)
	if !found {
		pkgResponse.NotFound(c, errUnknownLinkCode)
		return
	}

	if err := h.uc.LinkTelegramChat(ctx, sc, chatID); err != nil {
		h.l.Errorf(ctx, "telegram handler: link chat %d: %v", chatID, err)
		pkgResponse.InternalError(c, err)
		return
	}
	h.codes.Remove(code)

	h.notify(ctx, chatID, fmt.Sprintf(msgLinked, h.persona.Token()))
	pkgResponse.OK(c, linkResp{ChatID: chatID, UserID: sc.UserID})
}
