package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/pkg/response"
	"github.com/Sajidddd11/telegramtodo/pkg/scope"
)

// Auth requires a valid bearer token and stores the caller's scope.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if m.jwtManager == nil {
			m.l.Error(ctx, "middleware.Auth: jwt manager not configured")
			response.Unauthorized(c)
			c.Abort()
			return
		}

		token, err := scope.ExtractBearer(c.GetHeader(HeaderAuthorization))
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		user, err := m.jwtManager.Verify(token)
		if err != nil {
			m.l.Warnf(ctx, "middleware.Auth: %v", err)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		SetScope(c, model.Scope{UserID: user.ID, Username: user.Username, Channel: model.ChannelHTTP})
		c.Next()
	}
}

// SetScope stores sc for the rest of the request.
func SetScope(c *gin.Context, sc model.Scope) {
	c.Set(scopeKey, sc)
}

// GetScope returns the scope stored by Auth.
func GetScope(c *gin.Context) (model.Scope, bool) {
	v, ok := c.Get(scopeKey)
	if !ok {
		return model.Scope{}, false
	}
	sc, ok := v.(model.Scope)
	return sc, ok && sc.UserID != ""
}
