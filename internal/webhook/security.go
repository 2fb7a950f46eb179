package webhook

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/Sajidddd11/telegramtodo/pkg/response"
)

var (
	ErrInvalidSecret     = errors.New("invalid webhook secret token")
	ErrIPNotAllowed      = errors.New("ip not whitelisted")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// SecurityValidator validates webhook requests
type SecurityValidator struct {
	config      SecurityConfig
	rateLimiter *rateLimiter
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	return &SecurityValidator{
		config:      config,
		rateLimiter: newRateLimiter(config.RateLimitPerMin),
	}
}

// ValidateSecretToken compares the header Telegram sent with the registered secret.
// An unset secret accepts every request.
func (v *SecurityValidator) ValidateSecretToken(token string) error {
	if v.config.SecretToken == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(v.config.SecretToken)) != 1 {
		return ErrInvalidSecret
	}
	return nil
}

// ValidateIPAddress checks if request IP is whitelisted
func (v *SecurityValidator) ValidateIPAddress(r *http.Request) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil // No IP restriction
	}

	ip := extractIP(r)
	parsed := net.ParseIP(ip)

	for _, allowedIP := range v.config.AllowedIPs {
		if ip == allowedIP {
			return nil
		}

		if strings.Contains(allowedIP, "/") && parsed != nil {
			_, ipNet, err := net.ParseCIDR(allowedIP)
			if err != nil {
				continue
			}
			if ipNet.Contains(parsed) {
				return nil
			}
		}
	}

	return fmt.Errorf("%w: %s", ErrIPNotAllowed, ip)
}

// CheckRateLimit enforces rate limiting per key (a chat id for Telegram).
func (v *SecurityValidator) CheckRateLimit(key string) error {
	return v.rateLimiter.Allow(key)
}

// Guard rejects requests with a wrong secret token or from a foreign IP.
func (v *SecurityValidator) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := v.ValidateIPAddress(c.Request); err != nil {
			response.ErrorWithStatus(c, http.StatusForbidden, err)
			return
		}
		if err := v.ValidateSecretToken(c.GetHeader(HeaderSecretToken)); err != nil {
			response.ErrorWithStatus(c, http.StatusUnauthorized, err)
			return
		}
		c.Next()
	}
}

// extractIP extracts client IP from request
func extractIP(r *http.Request) string {
	// Check X-Forwarded-For header (proxy/load balancer)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fallback to RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// rateLimiter keeps one token bucket per key; idle buckets expire.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
	disabled bool
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](limiterCacheSize, nil, limiterTTL),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0), // Per second
		burst:    burst,
		disabled: requestsPerMin <= 0,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	if rl.disabled {
		return nil
	}

	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("%w for %s", ErrRateLimitExceeded, key)
	}
	return nil
}
