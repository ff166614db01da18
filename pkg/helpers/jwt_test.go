package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_very_long_for_testing"

func TestJWTManager_IssueAndVerify(t *testing.T) {
	m := NewJWTManager(testSecret, 0)
	assert.Equal(t, time.Hour, m.TTL)

	before := time.Now()
	token, exp, err := m.Issue("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, before.Add(time.Hour), exp, 2*time.Second)

	subject, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := m.Issue("user-1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManager_TamperedPayload(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	tokenA, _, err := m.Issue("user-a")
	require.NoError(t, err)
	tokenB, _, err := m.Issue("user-b")
	require.NoError(t, err)

	a := strings.Split(tokenA, ".")
	b := strings.Split(tokenB, ".")
	require.Len(t, a, 3)
	require.Len(t, b, 3)

	forged := a[0] + "." + b[1] + "." + a[2]
	_, err = m.Verify(forged)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("other-secret", time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = NewJWTManager(testSecret, time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManager_Malformed(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	for _, raw := range []string{"", "clearly-not-a-jwt-token-format", "a.b"} {
		_, err := m.Verify(raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", raw)
	}
}

func TestJWTManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewJWTManager(testSecret, time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManager_RequiresExpiryAndSubject(t *testing.T) {
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "user-1"}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	m := NewJWTManager(testSecret, time.Hour)
	_, err = m.Verify(noExp)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = m.Verify(noSubject)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
