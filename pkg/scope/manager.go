package scope

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultTTL = 7 * 24 * time.Hour
	issuer     = "telegramtodo"
)

// Manager signs and verifies HS256 access tokens.
type Manager interface {
	Sign(user User) (string, error)
	Verify(token string) (User, error)
}

type implManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates a Manager. A zero ttl means DefaultTTL.
func New(secret string, ttl time.Duration) (Manager, error) {
	if secret == "" {
		return nil, ErrSecretRequired
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &implManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (m *implManager) Sign(user User) (string, error) {
	if user.ID == "" {
		return "", ErrMissingUser
	}
	now := m.now()
	claims := Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *implManager) Verify(token string) (User, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user := claims.User
	if user.ID == "" {
		user.ID = claims.Subject
	}
	if user.ID == "" {
		return User{}, ErrMissingUser
	}
	return user, nil
}

// ExtractBearer returns the token of an "Authorization: Bearer <token>" header value.
func ExtractBearer(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrNoToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
