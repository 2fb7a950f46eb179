package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Channels and storage
	Telegram TelegramConfig
	Auth     AuthConfig
	Store    StoreConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Assistant loop
	Agent AgentConfig

	Metrics MetricsConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// Telegram modes.
const (
	TelegramModePolling = "polling"
	TelegramModeWebhook = "webhook"
)

type TelegramConfig struct {
	BotToken        string
	APIURL          string
	Mode            string
	WebhookURL      string
	SecretToken     string
	RateLimitPerMin int
	AllowedIPs      []string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Store drivers.
const (
	StoreDriverSQLite    = "sqlite"
	StoreDriverPostgREST = "postgrest"
)

type StoreConfig struct {
	Driver       string
	SQLitePath   string
	PostgRESTURL string
	PostgRESTKey string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // Global timeout for entire fallback chain
}

// ProviderConfig is one entry of llm.providers.
type ProviderConfig struct {
	Name     string `mapstructure:"name"`
	Enabled  bool   `mapstructure:"enabled"`
	Priority int    `mapstructure:"priority"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Model    string `mapstructure:"model"`
	Timeout  string `mapstructure:"timeout"`
}

// AgentConfig bounds the assistant loop and shapes its replies.
type AgentConfig struct {
	MaxHistory     int
	MaxIterations  int
	Timezone       string
	PersonaToken   string
	Palette        []string
	SessionTTL     time.Duration
	GatewayTimeout time.Duration
	ActionTimeout  time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	Temperature    float64
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	cfg.Telegram.APIURL = viper.GetString("telegram.api_url")
	cfg.Telegram.Mode = strings.ToLower(viper.GetString("telegram.mode"))
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.SecretToken = viper.GetString("telegram.secret_token")
	cfg.Telegram.RateLimitPerMin = viper.GetInt("telegram.rate_limit_per_min")
	// Split allowed IPs since viper might not parse array seamlessly from env
	cfg.Telegram.AllowedIPs = splitList(strings.Join(viper.GetStringSlice("telegram.allowed_ips"), ","))

	// Auth
	cfg.Auth.JWTSecret = viper.GetString("auth.jwt_secret")
	if secret := viper.GetString("jwt_secret"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	cfg.Auth.TokenTTL = viper.GetDuration("auth.token_ttl")

	// Store
	cfg.Store.Driver = strings.ToLower(viper.GetString("store.driver"))
	cfg.Store.SQLitePath = viper.GetString("store.sqlite_path")
	cfg.Store.PostgRESTURL = viper.GetString("store.postgrest_url")
	cfg.Store.PostgRESTKey = expandEnvVar(viper.GetString("store.postgrest_key"))
	if url := viper.GetString("supabase_url"); url != "" {
		cfg.Store.PostgRESTURL = url
	}
	if key := viper.GetString("supabase_key"); key != "" {
		cfg.Store.PostgRESTKey = key
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	if viper.IsSet("llm.providers") {
		if err := viper.UnmarshalKey("llm.providers", &cfg.LLM.Providers); err != nil {
			return nil, fmt.Errorf("llm.providers: %w", err)
		}
		for i := range cfg.LLM.Providers {
			cfg.LLM.Providers[i].APIKey = expandEnvVar(cfg.LLM.Providers[i].APIKey)
		}
	}

	// Agent
	cfg.Agent.MaxHistory = viper.GetInt("agent.max_history")
	cfg.Agent.MaxIterations = viper.GetInt("agent.max_iterations")
	cfg.Agent.Timezone = viper.GetString("agent.timezone")
	cfg.Agent.PersonaToken = viper.GetString("agent.persona_token")
	cfg.Agent.Palette = viper.GetStringSlice("agent.palette")
	cfg.Agent.SessionTTL = viper.GetDuration("agent.session_ttl")
	cfg.Agent.GatewayTimeout = viper.GetDuration("agent.gateway_timeout")
	cfg.Agent.ActionTimeout = viper.GetDuration("agent.action_timeout")
	cfg.Agent.MaxRetries = viper.GetInt("agent.max_retries")
	cfg.Agent.RetryDelay = viper.GetDuration("agent.retry_delay")
	cfg.Agent.Temperature = viper.GetFloat64("agent.temperature")

	// Metrics
	cfg.Metrics.Enabled = viper.GetBool("metrics.enabled")
	cfg.Metrics.Path = viper.GetString("metrics.path")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("telegram.mode", TelegramModePolling)
	viper.SetDefault("telegram.rate_limit_per_min", 30)

	viper.SetDefault("auth.token_ttl", "168h")

	viper.SetDefault("store.driver", StoreDriverSQLite)
	viper.SetDefault("store.sqlite_path", "todos.db")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 1)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s") // Default: 60 seconds for entire fallback chain

	// Agent defaults
	viper.SetDefault("agent.max_history", 10)
	viper.SetDefault("agent.max_iterations", 8)
	viper.SetDefault("agent.timezone", "Asia/Dhaka")
	viper.SetDefault("agent.persona_token", "boss")
	viper.SetDefault("agent.palette", []string{"😊", "👍", "✅", "📝", "📋", "🗓️", "⏰", "🔍", "👌", "💪"})
	viper.SetDefault("agent.session_ttl", "30m")
	viper.SetDefault("agent.gateway_timeout", "30s")
	viper.SetDefault("agent.action_timeout", "10s")
	viper.SetDefault("agent.max_retries", 2)
	viper.SetDefault("agent.retry_delay", "500ms")
	viper.SetDefault("agent.temperature", 0.7)

	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")
}

// validate checks cross-field rules. No LLM providers is valid: the assistant
// then reports itself unavailable.
func validate(cfg *Config) error {
	switch cfg.Store.Driver {
	case StoreDriverSQLite:
		if cfg.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required for the sqlite driver")
		}
	case StoreDriverPostgREST:
		if cfg.Store.PostgRESTURL == "" {
			return fmt.Errorf("store.postgrest_url is required for the postgrest driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	switch cfg.Telegram.Mode {
	case TelegramModePolling, TelegramModeWebhook:
	default:
		return fmt.Errorf("unknown telegram mode %q", cfg.Telegram.Mode)
	}

	if len(cfg.LLM.Providers) > 0 {
		if err := validateLLMConfig(&cfg.LLM); err != nil {
			return fmt.Errorf("llm: %w", err)
		}
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// expandEnvVar resolves a "${VAR}" value through viper, then the process
// environment. Anything else, or an unset variable, is returned unchanged.
func expandEnvVar(value string) string {
	name, ok := strings.CutPrefix(value, "${")
	if !ok {
		return value
	}
	name, ok = strings.CutSuffix(name, "}")
	if !ok || name == "" {
		return value
	}

	for _, key := range []string{name, strings.ToLower(name)} {
		if v := viper.GetString(key); v != "" {
			return v
		}
	}
	if v := os.Getenv(name); v != "" {
		return v
	}
	return value
}

// validateLLMConfig checks provider entries. Having no enabled provider is
// allowed: the assistant then reports itself unavailable.
func validateLLMConfig(cfg *LLMConfig) error {
	seen := make(map[int]string)
	enabled := 0

	for i, p := range cfg.Providers {
		if p.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if p.Model == "" {
			return fmt.Errorf("provider %s: model is required", p.Name)
		}
		if !p.Enabled {
			continue
		}
		enabled++

		if p.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", p.Name)
		}
		if other, dup := seen[p.Priority]; dup {
			return fmt.Errorf("provider %s: duplicate priority %d (also %s)", p.Name, p.Priority, other)
		}
		seen[p.Priority] = p.Name

		if p.APIKey == "" {
			fmt.Fprintf(os.Stderr, "Warning: provider %s has no API key configured\n", p.Name)
		}
	}

	if enabled == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no enabled LLM providers, the assistant will be unavailable")
	}
	return nil
}
