package httpserver

import "time"

const (
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMetricsPath     = "/metrics"

	readHeaderTimeout = 10 * time.Second
)

const (
	apiPrefix       = "/api/v1"
	telegramWebhook = "/webhook/telegram"
)
