// Package favorites manages the many-to-many link between users and
// locations and exposes the compact shapes both sides embed in their
// responses.
package favorites

import (
	"context"
	"errors"
	"fmt"

	"spacedout/internal/database"
)

// ErrAlreadyFavorite is returned when the pair already exists.
var ErrAlreadyFavorite = errors.New("location already favorited")

// LocationSummary is the compact location shape embedded in user profiles.
type LocationSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// UserSummary is the compact user shape embedded in location details.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Service defines the favorites operations.
type Service interface {
	Add(ctx context.Context, userID, locationID int64) error
	Remove(ctx context.Context, userID, locationID int64) error
	LocationsFor(ctx context.Context, userID int64) ([]LocationSummary, error)
	UsersFor(ctx context.Context, locationID int64) ([]UserSummary, error)
}

type service struct {
	db database.Service
}

// NewService creates a Postgres-backed favorites service.
func NewService(db database.Service) Service {
	return &service{db: db}
}

func (s *service) Add(ctx context.Context, userID, locationID int64) error {
	const q = `
		INSERT INTO favorites (user_id, location_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	result, err := s.db.Exec(ctx, q, userID, locationID)
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyFavorite
	}
	return nil
}

func (s *service) Remove(ctx context.Context, userID, locationID int64) error {
	const q = `DELETE FROM favorites WHERE user_id = $1 AND location_id = $2`

	_, err := s.db.Exec(ctx, q, userID, locationID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (s *service) LocationsFor(ctx context.Context, userID int64) ([]LocationSummary, error) {
	const q = `
		SELECT l.id, l.name, l.address
		FROM locations l
		JOIN favorites f ON f.location_id = l.id
		WHERE f.user_id = $1
		ORDER BY l.name ASC
	`

	rows, err := s.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorite locations: %w", err)
	}
	defer rows.Close()

	out := []LocationSummary{}
	for rows.Next() {
		var l LocationSummary
		if err := rows.Scan(&l.ID, &l.Name, &l.Address); err != nil {
			return nil, fmt.Errorf("scan favorite location: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *service) UsersFor(ctx context.Context, locationID int64) ([]UserSummary, error) {
	const q = `
		SELECT u.id, u.name, u.email
		FROM users u
		JOIN favorites f ON f.user_id = u.id
		WHERE f.location_id = $1
		ORDER BY u.name ASC
	`

	rows, err := s.db.Query(ctx, q, locationID)
	if err != nil {
		return nil, fmt.Errorf("list favoriting users: %w", err)
	}
	defer rows.Close()

	out := []UserSummary{}
	for rows.Next() {
		var u UserSummary
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("scan favoriting user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
