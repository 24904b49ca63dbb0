package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"spacedout/internal/database"
	"spacedout/internal/session"
)

func setupTestDB(t *testing.T) database.Service {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("spacedout_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(ctx))
	return db
}

func newTestUser(t *testing.T, email string) *User {
	t.Helper()
	creds, err := session.NewCredentials(time.Hour)
	require.NoError(t, err)

	return &User{
		Name:              "Test User",
		Email:             email,
		PasswordDigest:    "not-a-real-digest",
		SessionToken:      creds.SessionToken,
		SessionExpiration: creds.ExpiresAt,
		UpdateToken:       creds.UpdateToken,
	}
}

func TestRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("create and lookups", func(t *testing.T) {
		user := newTestUser(t, "alice@example.com")

		created, err := repo.Create(ctx, user)
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.Equal(t, user.Email, created.Email)

		byID, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, byID.ID)

		byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)

		bySession, err := repo.GetBySessionToken(ctx, user.SessionToken)
		require.NoError(t, err)
		assert.Equal(t, created.ID, bySession.ID)

		byUpdate, err := repo.GetByUpdateToken(ctx, user.UpdateToken)
		require.NoError(t, err)
		assert.Equal(t, created.ID, byUpdate.ID)

		// Timestamps survive the round trip to within driver precision.
		assert.WithinDuration(t, user.SessionExpiration, byID.SessionExpiration, time.Millisecond)
	})

	t.Run("duplicate email", func(t *testing.T) {
		first := newTestUser(t, "bob@example.com")
		_, err := repo.Create(ctx, first)
		require.NoError(t, err)

		dup := newTestUser(t, "bob@example.com")
		_, err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("update session", func(t *testing.T) {
		user := newTestUser(t, "carol@example.com")
		created, err := repo.Create(ctx, user)
		require.NoError(t, err)

		fresh, err := session.NewCredentials(time.Hour)
		require.NoError(t, err)
		require.NoError(t, repo.UpdateSession(ctx, created.ID, fresh))

		// Old token no longer resolves; the fresh one does.
		_, err = repo.GetBySessionToken(ctx, user.SessionToken)
		assert.ErrorIs(t, err, ErrUserNotFound)

		rotated, err := repo.GetBySessionToken(ctx, fresh.SessionToken)
		require.NoError(t, err)
		assert.Equal(t, created.ID, rotated.ID)
		assert.Equal(t, fresh.UpdateToken, rotated.UpdateToken)
	})

	t.Run("update session for missing user", func(t *testing.T) {
		fresh, err := session.NewCredentials(time.Hour)
		require.NoError(t, err)
		err = repo.UpdateSession(ctx, 999999, fresh)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("lookup missing user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
