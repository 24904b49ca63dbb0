// Package locations manages named places. Addresses are geocoded once at
// creation time; the stored coordinates are the source of truth afterwards.
package locations

import (
	"context"
	"fmt"
	"log/slog"

	"spacedout/internal/geocode"
)

// Service defines the locations operations.
type Service interface {
	Create(ctx context.Context, name, address string) (*Location, error)
	GetByID(ctx context.Context, id int64) (*Location, error)
	GetAll(ctx context.Context) ([]Location, error)
}

type service struct {
	repo     Repository
	geocoder geocode.Geocoder
}

// NewService creates the locations service.
func NewService(repo Repository, geocoder geocode.Geocoder) Service {
	return &service{repo: repo, geocoder: geocoder}
}

// Create geocodes the address and stores the location. A failed geocode
// fails the whole creation; a location without coordinates is useless here.
func (s *service) Create(ctx context.Context, name, address string) (*Location, error) {
	result, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("geocode address: %w", err)
	}

	loc, err := s.repo.Create(ctx, &Location{
		Name:      name,
		Address:   address,
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("location created", "location_id", loc.ID, "name", loc.Name)
	return loc, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Location, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetAll(ctx context.Context) ([]Location, error) {
	return s.repo.GetAll(ctx)
}
