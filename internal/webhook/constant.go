package webhook

import "time"

// HeaderSecretToken is set by Telegram on every webhook call when a secret was registered.
const HeaderSecretToken = "X-Telegram-Bot-Api-Secret-Token"

const (
	limiterCacheSize = 1000
	limiterTTL       = 5 * time.Minute
)
