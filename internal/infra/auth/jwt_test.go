package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndParseToken(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	tok, err := m.CreateAccessToken(42, "referrer", "ref@example.com")
	require.NoError(t, err)

	claims, err := m.ParseValidate(tok)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "referrer", claims.Role)
	assert.Equal(t, "ref@example.com", claims.Email)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewTokenManager("secret", time.Hour).CreateAccessToken(1, "user", "a@b.c")
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).ParseValidate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := m.CreateAccessToken(1, "user", "a@b.c")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Minute).ParseValidate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).ParseValidate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserIDBadSubject(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	_, err := c.UserID()
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
