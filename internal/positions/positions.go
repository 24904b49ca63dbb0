// Package positions records user position check-ins.
package positions

import (
	"context"
	"fmt"
	"time"

	"spacedout/internal/database"
)

// Position is one recorded check-in for a user.
type Position struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// CreatePositionRequest is the request payload for a check-in.
type CreatePositionRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// Service defines the positions operations.
type Service interface {
	Create(ctx context.Context, userID int64, latitude, longitude float64) (*Position, error)
	ListByUser(ctx context.Context, userID int64) ([]Position, error)
}

type service struct {
	db database.Service
}

// NewService creates a Postgres-backed positions service.
func NewService(db database.Service) Service {
	return &service{db: db}
}

func (s *service) Create(ctx context.Context, userID int64, latitude, longitude float64) (*Position, error) {
	const q = `
		INSERT INTO positions (user_id, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	p := &Position{
		UserID:    userID,
		Latitude:  latitude,
		Longitude: longitude,
		Timestamp: time.Now(),
	}

	if err := s.db.QueryRow(ctx, q, p.UserID, p.Latitude, p.Longitude, p.Timestamp).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("insert position: %w", err)
	}
	return p, nil
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]Position, error) {
	const q = `
		SELECT id, user_id, latitude, longitude, created_at
		FROM positions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()

	out := []Position{}
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.ID, &p.UserID, &p.Latitude, &p.Longitude, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
