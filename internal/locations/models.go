package locations

import (
	"spacedout/internal/comments"
	"spacedout/internal/favorites"
)

// Location represents one named place with a geocoded address.
type Location struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateLocationRequest is the request payload for adding a location. The
// coordinates are resolved from the address, never supplied by the client.
type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"required,max=500"`
}

// Summary is the compact location shape.
type Summary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Detail is the full location shape with its comments and favoriting users.
type Detail struct {
	Location
	Comments []comments.Summary      `json:"comments"`
	FavUsers []favorites.UserSummary `json:"fav_users"`
}

// Summary returns the compact shape for the location.
func (l *Location) Summary() Summary {
	return Summary{ID: l.ID, Name: l.Name, Address: l.Address}
}
