package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// write sends body with status. Error statuses abort the remaining handlers.
func write(c *gin.Context, status int, body Resp) {
	if status >= http.StatusBadRequest {
		c.AbortWithStatusJSON(status, body)
		return
	}
	c.JSON(status, body)
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	write(c, http.StatusOK, NewOKResp(data))
}

// Created sends 201 JSON with data.
func Created(c *gin.Context, data any) {
	write(c, http.StatusCreated, NewOKResp(data))
}

// Error sends a 400 for a request the handler could not bind.
func Error(c *gin.Context, err error, data map[string]interface{}) {
	if data == nil {
		data = make(map[string]interface{})
	}
	write(c, http.StatusBadRequest, Resp{
		ErrorCode: BadRequestErrorCode,
		Message:   err.Error(),
		Data:      data,
	})
}

// ErrorWithStatus sends err with an explicit HTTP status.
// The status doubles as the error code.
func ErrorWithStatus(c *gin.Context, status int, err error) {
	write(c, status, Resp{
		ErrorCode: status,
		Message:   err.Error(),
	})
}

// NotFound sends 404 with the error message.
func NotFound(c *gin.Context, err error) {
	ErrorWithStatus(c, http.StatusNotFound, err)
}

// ServiceUnavailable sends 503 with the error message.
func ServiceUnavailable(c *gin.Context, err error) {
	ErrorWithStatus(c, http.StatusServiceUnavailable, err)
}

// TooManyRequests sends 429 with the error message.
func TooManyRequests(c *gin.Context, err error) {
	ErrorWithStatus(c, http.StatusTooManyRequests, err)
}

// InternalError sends 500 without leaking err to the caller.
func InternalError(c *gin.Context, _ error) {
	write(c, http.StatusInternalServerError, Resp{
		ErrorCode: InternalServerErrorCode,
		Message:   DefaultErrorMessage,
	})
}

// Unauthorized sends 401.
func Unauthorized(c *gin.Context) {
	ErrorWithStatus(c, http.StatusUnauthorized, errUnauthorized)
}

// Forbidden sends 403.
func Forbidden(c *gin.Context) {
	ErrorWithStatus(c, http.StatusForbidden, errForbidden)
}
