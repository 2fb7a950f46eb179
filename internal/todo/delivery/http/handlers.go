package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
	"github.com/Sajidddd11/telegramtodo/pkg/response"
)

// Create godoc
// @Summary     Create a todo
// @Description Creates a todo for the caller. Priority outside 1..10 becomes 3; a missing deadline becomes now + 24h.
// @Tags        Todo
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body createReq true "Todo data"
// @Success     201  {object} itemResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     401  {object} response.Resp "Unauthorized"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/todos [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	t, err := h.uc.Create(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "todo.delivery.http.Create: %v", err)
		h.mapError(c, err)
		return
	}

	response.Created(c, h.newItemResp(t))
}

// List godoc
// @Summary     List todos
// @Description Returns the caller's todos. A non-empty q searches title and description.
// @Tags        Todo
// @Produce     json
// @Security    BearerAuth
// @Param       q query string false "Search text"
// @Success     200 {object} listResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/todos [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	var out []model.Todo
	if req.Query != "" {
		out, err = h.uc.Search(ctx, sc, todo.SearchInput{Query: req.Query})
	} else {
		out, err = h.uc.List(ctx, sc)
	}
	if err != nil {
		h.l.Errorf(ctx, "todo.delivery.http.List: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newListResp(out))
}

// Detail godoc
// @Summary     Get a todo
// @Tags        Todo
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Todo ID"
// @Success     200 {object} itemResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/todos/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	t, err := h.uc.Detail(ctx, sc, c.Param("id"))
	if err != nil {
		h.l.Warnf(ctx, "todo.delivery.http.Detail: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newItemResp(t))
}

// Update godoc
// @Summary     Update a todo
// @Description Partial update. Only the supplied fields change.
// @Tags        Todo
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string    true "Todo ID"
// @Param       body body updateReq true "Fields to update"
// @Success     200 {object} itemResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/todos/{id} [PUT]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	req, err := h.processUpdateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	t, err := h.uc.Update(ctx, sc, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "todo.delivery.http.Update: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newItemResp(t))
}

// Delete godoc
// @Summary     Delete a todo
// @Tags        Todo
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Todo ID"
// @Success     200 {object} itemResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/todos/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	t, err := h.uc.Delete(ctx, sc, c.Param("id"))
	if err != nil {
		h.l.Warnf(ctx, "todo.delivery.http.Delete: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newItemResp(t))
}
