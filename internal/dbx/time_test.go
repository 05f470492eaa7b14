package dbx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMillisRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 15, 123_000_000, time.FixedZone("X", 3600))

	ms := ToMillis(ts)
	assert.Equal(t, ts.UnixMilli(), ms)
	assert.True(t, ts.Equal(FromMillis(ms)))
	assert.Equal(t, time.UTC, FromMillis(ms).Location())

	assert.Equal(t, int64(0), ToMillis(time.Time{}))
	assert.True(t, FromMillis(0).IsZero())
}
