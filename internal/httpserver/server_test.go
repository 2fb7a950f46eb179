package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sajidddd11/telegramtodo/internal/agent/observability"
	"github.com/Sajidddd11/telegramtodo/internal/middleware"
	tgDelivery "github.com/Sajidddd11/telegramtodo/internal/todo/delivery/telegram"
	"github.com/Sajidddd11/telegramtodo/internal/todo/repository/sqlite"
	"github.com/Sajidddd11/telegramtodo/internal/todo/usecase"
	"github.com/Sajidddd11/telegramtodo/internal/webhook"
	"github.com/Sajidddd11/telegramtodo/pkg/datemath"
	"github.com/Sajidddd11/telegramtodo/pkg/log"
	"github.com/Sajidddd11/telegramtodo/pkg/scope"
)

type nopSender struct{}

func (nopSender) Send(context.Context, int64, string) error { return nil }

func newTestServer(t *testing.T, ready ReadinessCheck) *HTTPServer {
	t.Helper()

	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dm, err := datemath.NewParser("UTC")
	require.NoError(t, err)
	uc := usecase.New(log.NewNop(), sqlite.New(db, log.NewNop()), dm)

	jwtManager, err := scope.New("secret", time.Hour)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg)

	validator := webhook.NewSecurityValidator(webhook.SecurityConfig{SecretToken: "hook-secret"})
	srv, err := New(log.NewNop(), Config{
		Logger:           log.NewNop(),
		Port:             8080,
		Mode:             "test",
		Environment:      "development",
		Middleware:       middleware.New(log.NewNop(), jwtManager),
		Ready:            ready,
		TodoUseCase:      uc,
		TelegramHandler:  tgDelivery.New(log.NewNop(), uc, nopSender{}, nil, nil, validator),
		WebhookValidator: validator,
		Gatherer:         reg,
	})
	require.NoError(t, err)
	return srv
}

func get(srv *HTTPServer, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := get(srv, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), ServiceName, path)
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID), path)
	}

	w := get(srv, http.MethodGet, DefaultMetricsPath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "telegramtodo_agent"), "agent series are exported")
}

func TestReadyReportsStoreFailure(t *testing.T) {
	srv := newTestServer(t, func(context.Context) error { return errors.New("db down") })

	w := get(srv, http.MethodGet, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, http.StatusOK, get(srv, http.MethodGet, "/live").Code)
}

func TestDomainRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	assert.Equal(t, http.StatusUnauthorized, get(srv, http.MethodGet, "/api/v1/todos").Code)
	assert.Equal(t, http.StatusUnauthorized, get(srv, http.MethodPost, "/api/v1/telegram/link").Code)
	assert.Equal(t, http.StatusUnauthorized, get(srv, http.MethodPost, telegramWebhook).Code, "webhook requires the secret token")
	assert.Equal(t, http.StatusNotFound, get(srv, http.MethodPost, "/api/v1/ai/simulate").Code, "AI routes need an assistant")
}

func TestNewValidates(t *testing.T) {
	_, err := New(log.NewNop(), Config{Mode: "test", Port: 8080})
	assert.Error(t, err)

	_, err = New(log.NewNop(), Config{Mode: "test"})
	assert.Error(t, err)
}
