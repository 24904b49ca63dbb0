// Package users implements accounts and the session lifecycle: password
// login, credential rotation, and bearer-token verification. Session state
// is stored on the user row, so rotating credentials invalidates the old
// pair atomically.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"spacedout/internal/session"
)

// bcryptCost is deliberately above the library default; password checks are
// rare enough that the extra work factor is affordable.
const bcryptCost = 13

var (
	// ErrEmailExists is returned when the email is already registered.
	ErrEmailExists = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email/password verification fails.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned for unknown or expired session/update tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserNotFound is returned when a user lookup finds nothing.
	ErrUserNotFound = errors.New("user not found")
)

// Service defines the account and session operations.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	RenewSession(ctx context.Context, updateToken string) (*User, error)
	Logout(ctx context.Context, userID int64) error
	VerifySessionToken(ctx context.Context, token string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

type service struct {
	repo       Repository
	sessionTTL time.Duration
	now        func() time.Time
}

// NewService creates the users service. A non-positive sessionTTL falls back
// to session.DefaultTTL.
func NewService(repo Repository, sessionTTL time.Duration) Service {
	if sessionTTL <= 0 {
		sessionTTL = session.DefaultTTL
	}
	return &service{
		repo:       repo,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Register creates an account with a bcrypt password digest and a fresh
// session, mirroring login so a new user is signed in immediately.
func (s *service) Register(ctx context.Context, name, email, password string) (*User, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	creds, err := session.NewCredentials(s.sessionTTL)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, &User{
		Name:              name,
		Email:             email,
		PasswordDigest:    string(digest),
		SessionToken:      creds.SessionToken,
		SessionExpiration: creds.ExpiresAt,
		UpdateToken:       creds.UpdateToken,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies the password and rotates the session credentials.
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.rotateSession(ctx, user)
}

// RenewSession rotates credentials for the user holding the update token.
// The update token stays valid past the session expiration; only rotation
// retires it.
func (s *service) RenewSession(ctx context.Context, updateToken string) (*User, error) {
	user, err := s.repo.GetByUpdateToken(ctx, updateToken)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return s.rotateSession(ctx, user)
}

// Logout retires the user's current credentials by rotating them without
// handing the new pair to anyone.
func (s *service) Logout(ctx context.Context, userID int64) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	_, err = s.rotateSession(ctx, user)
	return err
}

// VerifySessionToken resolves a bearer token to its user. Unknown and
// expired tokens are indistinguishable to the caller.
func (s *service) VerifySessionToken(ctx context.Context, token string) (*User, error) {
	user, err := s.repo.GetBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !s.now().Before(user.SessionExpiration) {
		return nil, ErrInvalidToken
	}

	return user, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) rotateSession(ctx context.Context, user *User) (*User, error) {
	creds, err := session.NewCredentials(s.sessionTTL)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSession(ctx, user.ID, creds); err != nil {
		return nil, err
	}

	rotated := *user
	rotated.SessionToken = creds.SessionToken
	rotated.SessionExpiration = creds.ExpiresAt
	rotated.UpdateToken = creds.UpdateToken
	return &rotated, nil
}
