package comments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentExpiry(t *testing.T) {
	created := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	c := Comment{
		ID:         1,
		Text:       "pretty crowded right now",
		Number:     4,
		UserID:     7,
		LocationID: 9,
		CreatedAt:  created,
		ExpiresAt:  created.Add(TTL),
	}

	assert.False(t, c.Expired(created))
	assert.False(t, c.Expired(created.Add(TTL-time.Second)))
	assert.True(t, c.Expired(created.Add(TTL)))
	assert.True(t, c.Expired(created.Add(time.Hour)))
}

func TestCommentResponseComputesExpired(t *testing.T) {
	created := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	c := Comment{
		ID:         1,
		Text:       "quiet",
		Number:     -1,
		UserID:     7,
		LocationID: 9,
		CreatedAt:  created,
		ExpiresAt:  created.Add(TTL),
	}

	live := c.Response(created.Add(time.Minute))
	assert.False(t, live.Expired)
	assert.Equal(t, "2023-06-01T12:00:00Z", live.Timestamp)
	assert.Equal(t, "2023-06-01T12:03:00Z", live.Expiration)

	stale := c.Response(created.Add(10 * time.Minute))
	assert.True(t, stale.Expired)
}

func TestCommentSummary(t *testing.T) {
	created := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	c := Comment{ID: 5, Text: "long line", CreatedAt: created}

	s := c.Summary()
	assert.Equal(t, int64(5), s.ID)
	assert.Equal(t, "long line", s.Text)
	assert.Equal(t, "2023-06-01T12:00:00Z", s.Timestamp)
}
