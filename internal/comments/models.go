package comments

import "time"

// TTL is how long a comment stays live before it reports itself expired.
const TTL = 3 * time.Minute

// Comment represents one short-lived comment on a location.
type Comment struct {
	ID         int64
	Text       string
	Number     int
	UserID     int64
	LocationID int64
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// CreateCommentRequest is the request payload for posting a comment.
// Number is an optional client-defined rating; absent means -1.
type CreateCommentRequest struct {
	Text   string `json:"text" binding:"required,max=1000"`
	Number *int   `json:"number,omitempty"`
}

// Response is the full serialized comment. Expired is computed from the
// expiry at read time rather than stored.
type Response struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Number     int    `json:"number"`
	UserID     int64  `json:"user_id"`
	LocationID int64  `json:"location_id"`
	Timestamp  string `json:"time_stamp"`
	Expiration string `json:"expiration"`
	Expired    bool   `json:"expired"`
}

// Summary is the compact comment shape embedded in location details.
type Summary struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Expired reports whether the comment is past its expiry at t.
func (c *Comment) Expired(t time.Time) bool {
	return !t.Before(c.ExpiresAt)
}

// Response builds the full shape, computing Expired at t.
func (c *Comment) Response(t time.Time) Response {
	return Response{
		ID:         c.ID,
		Text:       c.Text,
		Number:     c.Number,
		UserID:     c.UserID,
		LocationID: c.LocationID,
		Timestamp:  c.CreatedAt.UTC().Format(time.RFC3339),
		Expiration: c.ExpiresAt.UTC().Format(time.RFC3339),
		Expired:    c.Expired(t),
	}
}

// Summary returns the compact shape for the comment.
func (c *Comment) Summary() Summary {
	return Summary{
		ID:        c.ID,
		Text:      c.Text,
		Timestamp: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
