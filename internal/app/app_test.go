package app

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sajidddd11/telegramtodo/config"
	"github.com/Sajidddd11/telegramtodo/internal/agent/orchestrator"
	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
	"github.com/Sajidddd11/telegramtodo/pkg/log"
)

func testConfig() *config.Config {
	return &config.Config{
		Store: config.StoreConfig{Driver: config.StoreDriverSQLite, SQLitePath: ":memory:"},
		Agent: config.AgentConfig{
			MaxHistory:    10,
			MaxIterations: 8,
			Timezone:      "Asia/Dhaka",
			PersonaToken:  "boss",
			MaxRetries:    2,
			RetryDelay:    time.Millisecond,
		},
	}
}

func TestBuildWithoutProviders(t *testing.T) {
	ctx := context.Background()
	a, err := Build(ctx, testConfig(), log.NewNop(), prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	assert.Empty(t, a.Providers)
	assert.False(t, a.Orchestrator.Available())
	require.NoError(t, a.Repo.Ping(ctx))

	sc := model.Scope{UserID: "u-1", Channel: model.ChannelCLI}
	_, err = a.Todos.Create(ctx, sc, todo.CreateInput{Title: "stretch"})
	require.NoError(t, err)

	res, err := a.Orchestrator.ProcessQuery(ctx, sc, "what do I have?")
	require.NoError(t, err)
	assert.Equal(t, orchestrator.StateFailed, res.State)
	assert.Equal(t, orchestrator.ReasonGatewayUnavailable, res.Reason)
	assert.Contains(t, res.Reply, "not available")
}

func TestBuildBadTimezoneFallsBackToUTC(t *testing.T) {
	cfg := testConfig()
	cfg.Agent.Timezone = "Mars/Olympus"

	a, err := Build(context.Background(), cfg, log.NewNop(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	assert.Equal(t, time.UTC, a.Persona.Location())
}

func TestBuildUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Store.Driver = "mongo"
	_, err := Build(context.Background(), cfg, log.NewNop(), nil)
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
}
