package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/pkg/log"
	"github.com/Sajidddd11/telegramtodo/pkg/scope"
)

func newRouter(t *testing.T) (*gin.Engine, scope.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager, err := scope.New("secret", time.Hour)
	require.NoError(t, err)

	mw := New(log.NewNop(), jwtManager)
	r := gin.New()
	r.Use(mw.RequestID())
	r.GET("/me", mw.Auth(), func(c *gin.Context) {
		sc, ok := GetScope(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": sc.UserID, "channel": sc.Channel, "request_id": log.RequestID(c.Request.Context())})
	})
	return r, jwtManager
}

func TestAuth(t *testing.T) {
	r, jwtManager := newRouter(t)
	token, err := jwtManager.Sign(scope.User{ID: "u-1"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "Bearer " + token, want: http.StatusOK},
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, want: http.StatusUnauthorized},
		{name: "tampered", header: "Bearer " + token + "x", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(HeaderAuthorization, tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"user_id":"u-1"`)
				assert.Contains(t, w.Body.String(), `"channel":"`+string(model.ChannelHTTP)+`"`)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r, jwtManager := newRouter(t)
	token, _ := jwtManager.Sign(scope.User{ID: "u-1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderAuthorization, "Bearer "+token)
	req.Header.Set(HeaderRequestID, "req-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))
	assert.Contains(t, w.Body.String(), `"request_id":"req-123"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}
