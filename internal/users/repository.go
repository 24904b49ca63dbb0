package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"spacedout/internal/database"
	"spacedout/internal/session"
)

// Repository defines the persistence operations the users service needs.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetBySessionToken(ctx context.Context, token string) (*User, error)
	GetByUpdateToken(ctx context.Context, token string) (*User, error)
	UpdateSession(ctx context.Context, userID int64, creds session.Credentials) error
}

const userColumns = `id, name, email, password_digest, session_token, session_expiration, update_token`

type repository struct {
	db database.Service
}

// NewRepository creates a Postgres-backed users repository.
func NewRepository(db database.Service) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) (*User, error) {
	query := `
		INSERT INTO users (name, email, password_digest, session_token, session_expiration, update_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordDigest,
		user.SessionToken, user.SessionExpiration, user.UpdateToken,
	))
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *repository) GetBySessionToken(ctx context.Context, token string) (*User, error) {
	return r.getBy(ctx, "session_token", token)
}

func (r *repository) GetByUpdateToken(ctx context.Context, token string) (*User, error) {
	return r.getBy(ctx, "update_token", token)
}

func (r *repository) getBy(ctx context.Context, column string, value any) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)

	user, err := scanUser(r.db.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}
	return user, nil
}

func (r *repository) UpdateSession(ctx context.Context, userID int64, creds session.Credentials) error {
	query := `
		UPDATE users
		SET session_token = $1, session_expiration = $2, update_token = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(ctx, query, creds.SessionToken, creds.ExpiresAt, creds.UpdateToken, userID)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordDigest,
		&u.SessionToken, &u.SessionExpiration, &u.UpdateToken,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation on the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}
