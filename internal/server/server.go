// Package server wires the services together and configures the HTTP server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"spacedout/internal/config"
	"spacedout/internal/database"
	"spacedout/internal/geocode"
	"spacedout/internal/storage"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	SessionTTL   time.Duration
}

// LoadConfigFromEnv loads server configuration from environment variables.
func LoadConfigFromEnv() *Config {
	port, _ := strconv.Atoi(config.GetEnvOrDefault("PORT", "8080"))

	return &Config{
		Port:         port,
		ReadTimeout:  config.GetEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: config.GetEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  config.GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		SessionTTL:   config.GetEnvDuration("SESSION_TTL", 0),
	}
}

// Server holds the shared infrastructure dependencies.
type Server struct {
	cfg     *Config
	db      database.Service
	storage storage.Service
	geo     geocode.Geocoder
}

// New builds the whole application and returns a configured *http.Server.
func New(ctx context.Context) (*http.Server, error) {
	if err := config.ValidateEnv([]string{"DATABASE_URL"}); err != nil {
		return nil, err
	}

	cfg := LoadConfigFromEnv()

	db, err := database.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	// Photos are optional; the service runs without object storage.
	store, err := storage.New(ctx)
	if err != nil {
		slog.Warn("object storage unavailable, photo endpoints disabled", "error", err)
		store = nil
	} else if err := store.EnsureBucket(ctx); err != nil {
		slog.Warn("bucket bootstrap failed, photo endpoints disabled", "error", err)
		store = nil
	}

	s := &Server{
		cfg:     cfg,
		db:      db,
		storage: store,
		geo:     geocode.NewClient(),
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.RegisterRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}, nil
}
