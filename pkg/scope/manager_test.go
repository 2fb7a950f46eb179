package scope

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	m, err := New("secret", time.Hour)
	require.NoError(t, err)

	token, err := m.Sign(User{ID: "u-1", Username: "sajid"})
	require.NoError(t, err)

	user, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, User{ID: "u-1", Username: "sajid"}, user)
}

func TestVerify_Rejects(t *testing.T) {
	m, _ := New("secret", time.Hour)
	other, _ := New("other", time.Hour)
	foreign, err := other.Sign(User{ID: "u-1"})
	require.NoError(t, err)

	expiring := m.(*implManager)
	expiring.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiring.Sign(User{ID: "u-1"})
	require.NoError(t, err)
	expiring.now = time.Now

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{User: User{ID: "u-1"}}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": foreign,
		"expired":      expired,
		"alg none":     none,
		"garbage":      "a.b.c",
	} {
		_, err := m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}
}

func TestVerify_SubjectFallback(t *testing.T) {
	m, _ := New("secret", time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u-9",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	user, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-9", user.ID)
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New("", 0)
	assert.ErrorIs(t, err, ErrSecretRequired)
}

func TestExtractBearer(t *testing.T) {
	tok, err := ExtractBearer("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	tok, err = ExtractBearer("bearer  abc ")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	for _, h := range []string{"", "Bearer", "Basic abc", "Bearer   "} {
		_, err := ExtractBearer(h)
		assert.ErrorIs(t, err, ErrNoToken, h)
	}
}
