// Package geocode resolves street addresses to coordinates through the
// Nominatim search API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"spacedout/internal/config"
)

// ErrNoResults is returned when the geocoder finds nothing for an address.
var ErrNoResults = errors.New("geocode: no results for address")

// Result is one resolved address.
type Result struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Geocoder resolves an address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Result, error)
}

// Client is a Nominatim-backed Geocoder.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a Nominatim client. The endpoint can be overridden with
// GEOCODE_BASE_URL for self-hosted instances and tests. Nominatim's usage
// policy requires an identifying User-Agent.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    config.GetEnvOrDefault("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		userAgent:  config.GetEnvOrDefault("GEOCODE_USER_AGENT", "spacedout"),
	}
}

// nominatimPlace is the subset of the search response the client reads.
// Nominatim returns coordinates as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves an address via GET /search, taking the first match.
func (c *Client) Geocode(ctx context.Context, address string) (*Result, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("geocode: decode response: %w", err)
	}
	if len(places) == 0 {
		return nil, ErrNoResults
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: parse longitude: %w", err)
	}

	return &Result{Latitude: lat, Longitude: lon, DisplayName: places[0].DisplayName}, nil
}
