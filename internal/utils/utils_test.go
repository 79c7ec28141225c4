package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	tok, err := NewAdminToken("s3cret", "admin@galeragate.com", time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), tok.Exp, 5*time.Second)

	claims, err := ParseAdminToken("s3cret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@galeragate.com", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestAdminTokenRejected(t *testing.T) {
	tok, err := NewAdminToken("s3cret", "admin@galeragate.com", time.Minute)
	require.NoError(t, err)

	_, err = ParseAdminToken("other", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := NewAdminToken("s3cret", "admin@galeragate.com", -time.Minute)
	require.NoError(t, err)
	_, err = ParseAdminToken("s3cret", expired.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseAdminToken("s3cret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("admin123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "admin123"))
	assert.False(t, VerifyPassword(hash, "admin124"))
	assert.False(t, VerifyPassword("", "admin123"))

	cost, err := HashCost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	_, err = HashPassword("", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(16)
	require.NoError(t, err)
	b, err := RandomHex(16)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
