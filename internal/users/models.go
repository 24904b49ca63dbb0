package users

import (
	"time"

	"spacedout/internal/favorites"
	"spacedout/internal/session"
)

// User represents an account row, including its current session columns.
// The session state lives on the user row: rotating credentials replaces
// the columns in place.
type User struct {
	ID                int64
	Name              string
	Email             string
	PasswordDigest    string
	SessionToken      string
	SessionExpiration time.Time
	UpdateToken       string
}

// Credentials returns the user's stored session credentials.
func (u *User) Credentials() session.Credentials {
	return session.Credentials{
		SessionToken: u.SessionToken,
		UpdateToken:  u.UpdateToken,
		ExpiresAt:    u.SessionExpiration,
	}
}

// Record returns the serializable session record for the user's current
// credentials.
func (u *User) Record() session.Record {
	return u.Credentials().Record(u.ID)
}

// RegisterRequest is the request payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the request payload for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RenewSessionRequest is the request payload for rotating a session with an
// update token.
type RenewSessionRequest struct {
	UpdateToken string `json:"update_token" binding:"required"`
}

// Summary is the compact user shape embedded in other responses.
type Summary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile is the full user shape, including the session record fields and
// favorite locations.
type Profile struct {
	ID                int64                       `json:"id"`
	Name              string                      `json:"name"`
	Email             string                      `json:"email"`
	Favorites         []favorites.LocationSummary `json:"favorites"`
	SessionToken      string                      `json:"session_token"`
	SessionExpiration string                      `json:"session_expiration"`
	UpdateToken       string                      `json:"update_token"`
}

// Summary returns the compact shape for the user.
func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Profile builds the full response shape. The session fields come from the
// user's session record so their text forms match what auth endpoints issue.
func (u *User) Profile(favs []favorites.LocationSummary) Profile {
	if favs == nil {
		favs = []favorites.LocationSummary{}
	}
	rec := u.Record()
	return Profile{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Favorites:         favs,
		SessionToken:      rec.SessionToken(),
		SessionExpiration: rec.SessionExpiration(),
		UpdateToken:       rec.UpdateToken(),
	}
}
