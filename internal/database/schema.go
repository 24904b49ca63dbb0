package database

import (
	"context"
	"fmt"
)

// Schema statements are idempotent so Migrate can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		password_digest TEXT NOT NULL,
		session_token TEXT NOT NULL,
		session_expiration TIMESTAMPTZ NOT NULL,
		update_token TEXT NOT NULL,
		CONSTRAINT users_email_key UNIQUE (email),
		CONSTRAINT users_session_token_key UNIQUE (session_token),
		CONSTRAINT users_update_token_key UNIQUE (update_token)
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		text TEXT NOT NULL DEFAULT '',
		number INTEGER NOT NULL DEFAULT -1,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		location_id BIGINT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS positions (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		location_id BIGINT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, location_id)
	)`,
	`CREATE INDEX IF NOT EXISTS comments_location_id_idx ON comments (location_id)`,
	`CREATE INDEX IF NOT EXISTS positions_user_id_idx ON positions (user_id)`,
}

// Migrate creates any missing tables and indexes.
func (s *service) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
