package session

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenShape(t *testing.T) {
	tok, err := GenerateToken()
	require.NoError(t, err)
	assert.Len(t, tok, 40)

	_, err = hex.DecodeString(tok)
	assert.NoError(t, err)
}

func TestGenerateTokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		tok, err := GenerateToken()
		require.NoError(t, err)
		assert.False(t, seen[tok], "token %s generated twice", tok)
		seen[tok] = true
	}
}

func TestNewCredentials(t *testing.T) {
	before := time.Now()
	creds, err := NewCredentials(time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, creds.SessionToken, creds.UpdateToken)
	assert.WithinDuration(t, before.Add(time.Hour), creds.ExpiresAt, 5*time.Second)

	assert.False(t, creds.Expired(time.Now()))
	assert.True(t, creds.Expired(creds.ExpiresAt))
	assert.True(t, creds.Expired(creds.ExpiresAt.Add(time.Minute)))
}

func TestNewCredentialsDefaultTTL(t *testing.T) {
	creds, err := NewCredentials(0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), creds.ExpiresAt, 5*time.Second)
}

func TestCredentialsRecord(t *testing.T) {
	expires := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	creds := Credentials{
		SessionToken: "tok123",
		UpdateToken:  "upd456",
		ExpiresAt:    expires,
	}

	rec := creds.Record(42)
	assert.Equal(t, NewRecord("tok123", "2023-01-01T00:00:00Z", "upd456", 42), rec)
}
