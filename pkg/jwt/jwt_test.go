package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateToken_RoundTrip(t *testing.T) {
	m := NewManager(testSecret, 24*time.Hour)

	token, err := m.GenerateToken(42, "reader@example.com", "user")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestGenerateToken_ExpiresAfter24Hours(t *testing.T) {
	m := NewManager(testSecret, 0)
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	token, err := m.GenerateToken(1, "a@b.com", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, fixed.Unix(), claims.IssuedAt.Unix())
}

func TestValidateToken_Expired(t *testing.T) {
	m := NewManager(testSecret, time.Hour)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateToken(1, "a@b.com", "user")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = m.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewManager(testSecret, time.Hour).GenerateToken(1, "a@b.com", "user")
	require.NoError(t, err)

	_, err = NewManager("another-secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	m := NewManager(testSecret, time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		t.Run(raw, func(t *testing.T) {
			_, err := m.ValidateToken(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
