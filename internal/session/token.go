package session

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"
)

// DefaultTTL is how long a freshly issued session stays valid.
const DefaultTTL = 24 * time.Hour

// GenerateToken returns a new opaque 40-character token: the hex SHA-1
// digest of 64 bytes from crypto/rand. The digest only fixes the token
// shape; all entropy comes from the random source.
func GenerateToken() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session: generate token: %w", err)
	}
	sum := sha1.Sum(buf)
	return hex.EncodeToString(sum[:]), nil
}

// Credentials is one issued session/update token pair with its expiry.
// The users service stores these on the user row and rotates them on
// login and renewal.
type Credentials struct {
	SessionToken string
	UpdateToken  string
	ExpiresAt    time.Time
}

// NewCredentials issues a fresh token pair expiring ttl from now.
// A non-positive ttl falls back to DefaultTTL.
func NewCredentials(ttl time.Duration) (Credentials, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	sessionToken, err := GenerateToken()
	if err != nil {
		return Credentials{}, err
	}
	updateToken, err := GenerateToken()
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		SessionToken: sessionToken,
		UpdateToken:  updateToken,
		ExpiresAt:    time.Now().Add(ttl),
	}, nil
}

// Expired reports whether the credentials are past their expiry at t.
func (c Credentials) Expired(t time.Time) bool {
	return !t.Before(c.ExpiresAt)
}

// Record builds the serializable Record for these credentials, owned by id.
// The expiry is rendered as RFC 3339 text; from that point on the record
// treats it as opaque.
func (c Credentials) Record(id int64) Record {
	return NewRecord(c.SessionToken, c.ExpiresAt.UTC().Format(time.RFC3339), c.UpdateToken, id)
}
