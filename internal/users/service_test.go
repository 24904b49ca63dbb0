package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"spacedout/internal/session"
)

// Mock repository for service tests
type mockRepository struct {
	createFunc            func(ctx context.Context, user *User) (*User, error)
	getByIDFunc           func(ctx context.Context, id int64) (*User, error)
	getByEmailFunc        func(ctx context.Context, email string) (*User, error)
	getBySessionTokenFunc func(ctx context.Context, token string) (*User, error)
	getByUpdateTokenFunc  func(ctx context.Context, token string) (*User, error)
	updateSessionFunc     func(ctx context.Context, userID int64, creds session.Credentials) error
}

func (m *mockRepository) Create(ctx context.Context, user *User) (*User, error) {
	return m.createFunc(ctx, user)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) GetBySessionToken(ctx context.Context, token string) (*User, error) {
	if m.getBySessionTokenFunc != nil {
		return m.getBySessionTokenFunc(ctx, token)
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) GetByUpdateToken(ctx context.Context, token string) (*User, error) {
	if m.getByUpdateTokenFunc != nil {
		return m.getByUpdateTokenFunc(ctx, token)
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) UpdateSession(ctx context.Context, userID int64, creds session.Credentials) error {
	if m.updateSessionFunc != nil {
		return m.updateSessionFunc(ctx, userID, creds)
	}
	return nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(digest)
}

func TestRegisterHashesPasswordAndIssuesSession(t *testing.T) {
	var stored *User
	repo := &mockRepository{
		createFunc: func(ctx context.Context, user *User) (*User, error) {
			created := *user
			created.ID = 1
			stored = &created
			return &created, nil
		},
	}

	svc := NewService(repo, time.Hour)
	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "correct horse battery")
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.NotEqual(t, "correct horse battery", stored.PasswordDigest)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordDigest), []byte("correct horse battery")))

	assert.Len(t, user.SessionToken, 40)
	assert.Len(t, user.UpdateToken, 40)
	assert.NotEqual(t, user.SessionToken, user.UpdateToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), user.SessionExpiration, 5*time.Second)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &mockRepository{
		createFunc: func(ctx context.Context, user *User) (*User, error) {
			return nil, ErrEmailExists
		},
	}

	svc := NewService(repo, 0)
	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginRotatesSession(t *testing.T) {
	existing := &User{
		ID:             1,
		Email:          "alice@example.com",
		PasswordDigest: hashPassword(t, "password123"),
		SessionToken:   "old-session-token",
		UpdateToken:    "old-update-token",
	}

	var rotated session.Credentials
	repo := &mockRepository{
		getByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			return existing, nil
		},
		updateSessionFunc: func(ctx context.Context, userID int64, creds session.Credentials) error {
			rotated = creds
			return nil
		},
	}

	svc := NewService(repo, time.Hour)
	user, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	assert.NotEqual(t, "old-session-token", user.SessionToken)
	assert.NotEqual(t, "old-update-token", user.UpdateToken)
	assert.Equal(t, rotated.SessionToken, user.SessionToken)
	assert.Equal(t, rotated.UpdateToken, user.UpdateToken)

	// The original value must be left alone; the rotated user is a new value.
	assert.Equal(t, "old-session-token", existing.SessionToken)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &mockRepository{
		getByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			return &User{ID: 1, PasswordDigest: hashPassword(t, "password123")}, nil
		},
	}

	svc := NewService(repo, 0)
	_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewService(&mockRepository{}, 0)
	_, err := svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRenewSession(t *testing.T) {
	repo := &mockRepository{
		getByUpdateTokenFunc: func(ctx context.Context, token string) (*User, error) {
			if token != "known-update-token" {
				return nil, ErrUserNotFound
			}
			return &User{ID: 2, UpdateToken: token}, nil
		},
	}

	svc := NewService(repo, time.Hour)

	user, err := svc.RenewSession(context.Background(), "known-update-token")
	require.NoError(t, err)
	assert.NotEqual(t, "known-update-token", user.UpdateToken)

	_, err = svc.RenewSession(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySessionToken(t *testing.T) {
	repo := &mockRepository{
		getBySessionTokenFunc: func(ctx context.Context, token string) (*User, error) {
			switch token {
			case "live-token":
				return &User{ID: 3, SessionToken: token, SessionExpiration: time.Now().Add(time.Hour)}, nil
			case "expired-token":
				return &User{ID: 4, SessionToken: token, SessionExpiration: time.Now().Add(-time.Minute)}, nil
			default:
				return nil, ErrUserNotFound
			}
		},
	}

	svc := NewService(repo, 0)

	user, err := svc.VerifySessionToken(context.Background(), "live-token")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)

	_, err = svc.VerifySessionToken(context.Background(), "expired-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifySessionToken(context.Background(), "unknown-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserRecordMatchesIssuedCredentials(t *testing.T) {
	expires := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	user := &User{
		ID:                42,
		SessionToken:      "tok123",
		SessionExpiration: expires,
		UpdateToken:       "upd456",
	}

	rec := user.Record()
	assert.Equal(t, session.NewRecord("tok123", "2023-01-01T00:00:00Z", "upd456", 42), rec)
}
