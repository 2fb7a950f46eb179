package webhook

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	SecretToken     string   // compared with the X-Telegram-Bot-Api-Secret-Token header
	AllowedIPs      []string // IP or CIDR whitelist (optional)
	RateLimitPerMin int      // Max requests per minute and per key
}
