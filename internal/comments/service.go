// Package comments implements short-lived comments on locations. Expiry is
// soft: rows stay in the table and report expired in their serialized form,
// so the recent-activity view decides what to hide.
package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"spacedout/internal/database"
)

var (
	// ErrCommentNotFound is returned when a comment lookup finds nothing.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrUnauthorized is returned when a user modifies a comment they do not own.
	ErrUnauthorized = errors.New("unauthorized to modify this comment")
)

// Service defines the comments operations.
type Service interface {
	Create(ctx context.Context, userID, locationID int64, text string, number int) (*Comment, error)
	ListByLocation(ctx context.Context, locationID int64) ([]Comment, error)
	Delete(ctx context.Context, userID, commentID int64) error
}

type service struct {
	db  database.Service
	now func() time.Time
}

// NewService creates the comments service.
func NewService(db database.Service) Service {
	return &service{db: db, now: time.Now}
}

func (s *service) Create(ctx context.Context, userID, locationID int64, text string, number int) (*Comment, error) {
	now := s.now()

	const q = `
		INSERT INTO comments (text, number, user_id, location_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	c := &Comment{
		Text:       text,
		Number:     number,
		UserID:     userID,
		LocationID: locationID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(TTL),
	}

	if err := s.db.QueryRow(ctx, q, c.Text, c.Number, c.UserID, c.LocationID, c.CreatedAt, c.ExpiresAt).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return c, nil
}

func (s *service) ListByLocation(ctx context.Context, locationID int64) ([]Comment, error) {
	const q = `
		SELECT id, text, number, user_id, location_id, created_at, expires_at
		FROM comments
		WHERE location_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, q, locationID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.Number, &c.UserID, &c.LocationID, &c.CreatedAt, &c.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a comment, but only for its author.
func (s *service) Delete(ctx context.Context, userID, commentID int64) error {
	const lookup = `SELECT user_id FROM comments WHERE id = $1`

	var ownerID int64
	err := s.db.QueryRow(ctx, lookup, commentID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCommentNotFound
	}
	if err != nil {
		return fmt.Errorf("get comment owner: %w", err)
	}
	if ownerID != userID {
		return ErrUnauthorized
	}

	const del = `DELETE FROM comments WHERE id = $1`
	if _, err := s.db.Exec(ctx, del, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
