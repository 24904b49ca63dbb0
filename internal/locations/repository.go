package locations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"spacedout/internal/database"
)

// ErrLocationNotFound is returned when a location lookup finds nothing.
var ErrLocationNotFound = errors.New("location not found")

// Repository handles the database operations for locations.
type Repository interface {
	Create(ctx context.Context, loc *Location) (*Location, error)
	GetByID(ctx context.Context, id int64) (*Location, error)
	GetAll(ctx context.Context) ([]Location, error)
}

type repository struct {
	db database.Service
}

// NewRepository creates a Postgres-backed locations repository.
func NewRepository(db database.Service) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, loc *Location) (*Location, error) {
	const q = `
		INSERT INTO locations (name, address, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, address, latitude, longitude
	`

	created := &Location{}
	err := r.db.QueryRow(ctx, q, loc.Name, loc.Address, loc.Latitude, loc.Longitude).Scan(
		&created.ID, &created.Name, &created.Address, &created.Latitude, &created.Longitude,
	)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Location, error) {
	const q = `SELECT id, name, address, latitude, longitude FROM locations WHERE id = $1`

	loc := &Location{}
	err := r.db.QueryRow(ctx, q, id).Scan(
		&loc.ID, &loc.Name, &loc.Address, &loc.Latitude, &loc.Longitude,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Location, error) {
	const q = `SELECT id, name, address, latitude, longitude FROM locations ORDER BY name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	out := []Location{}
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Address, &loc.Latitude, &loc.Longitude); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}
