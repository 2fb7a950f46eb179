package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPServer.Port)
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, TelegramModePolling, cfg.Telegram.Mode)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)

	assert.Equal(t, 10, cfg.Agent.MaxHistory)
	assert.Equal(t, 8, cfg.Agent.MaxIterations)
	assert.Equal(t, "Asia/Dhaka", cfg.Agent.Timezone)
	assert.Equal(t, "boss", cfg.Agent.PersonaToken)
	assert.Len(t, cfg.Agent.Palette, 10)
	assert.Equal(t, 30*time.Minute, cfg.Agent.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.Agent.GatewayTimeout)
	assert.Equal(t, 10*time.Second, cfg.Agent.ActionTimeout)
	assert.Equal(t, 2, cfg.Agent.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Agent.RetryDelay)
	assert.InDelta(t, 0.7, cfg.Agent.Temperature, 1e-9)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AGENT_MAX_HISTORY", "4")
	t.Setenv("TELEGRAM_MODE", "Webhook")
	t.Setenv("TELEGRAM_ALLOWED_IPS", "149.154.160.0/20, 91.108.4.0/22")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Agent.MaxHistory)
	assert.Equal(t, TelegramModeWebhook, cfg.Telegram.Mode)
	assert.Equal(t, []string{"149.154.160.0/20", "91.108.4.0/22"}, cfg.Telegram.AllowedIPs)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestLoadProvidersFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
llm:
  fallback_enabled: true
  providers:
    - name: openai
      enabled: true
      priority: 1
      api_key: ${TEST_OPENAI_KEY}
      model: gpt-4o-mini
      timeout: 20s
    - name: deepseek
      enabled: false
      priority: 2
      api_key: literal
      model: deepseek-chat
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Chdir(dir)
	t.Setenv("TEST_OPENAI_KEY", "sk-from-env")
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.LLM.Providers, 2)
	assert.True(t, cfg.LLM.FallbackEnabled)
	assert.Equal(t, ProviderConfig{
		Name: "openai", Enabled: true, Priority: 1,
		APIKey: "sk-from-env", Model: "gpt-4o-mini", Timeout: "20s",
	}, cfg.LLM.Providers[0])
	assert.Equal(t, "literal", cfg.LLM.Providers[1].APIKey)
	assert.False(t, cfg.LLM.Providers[1].Enabled)
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	t.Run("store driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")
		_, err := Load()
		assert.ErrorContains(t, err, "unknown store driver")
	})
	t.Run("telegram mode", func(t *testing.T) {
		t.Setenv("TELEGRAM_MODE", "carrier-pigeon")
		_, err := Load()
		assert.ErrorContains(t, err, "unknown telegram mode")
	})
	t.Run("postgrest without url", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "postgrest")
		_, err := Load()
		assert.ErrorContains(t, err, "postgrest_url")
	})
}

func TestValidateLLMConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LLMConfig
		wantErr string
	}{
		{
			name: "valid",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "openai", Enabled: true, Priority: 1, APIKey: "k", Model: "gpt-4o-mini"},
				{Name: "deepseek", Enabled: true, Priority: 2, APIKey: "k", Model: "deepseek-chat"},
			}},
		},
		{
			name: "all disabled is allowed",
			cfg:  LLMConfig{Providers: []ProviderConfig{{Name: "openai", Model: "gpt-4o-mini"}}},
		},
		{
			name:    "missing model",
			cfg:     LLMConfig{Providers: []ProviderConfig{{Name: "openai", Enabled: true, Priority: 1}}},
			wantErr: "model is required",
		},
		{
			name: "duplicate priority",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "openai", Enabled: true, Priority: 1, APIKey: "k", Model: "a"},
				{Name: "anthropic", Enabled: true, Priority: 1, APIKey: "k", Model: "b"},
			}},
			wantErr: "duplicate priority",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLLMConfig(&tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("MY_TEST_KEY", "sk-123")
	assert.Equal(t, "sk-123", expandEnvVar("${MY_TEST_KEY}"))
	assert.Equal(t, "plain", expandEnvVar("plain"))
	assert.Equal(t, "${UNSET_TEST_KEY_XYZ}", expandEnvVar("${UNSET_TEST_KEY_XYZ}"))
}
