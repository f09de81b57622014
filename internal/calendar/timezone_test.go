package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayUsesLocation(t *testing.T) {
	loc, err := LoadLocation(DefaultTimezone)
	require.NoError(t, err)

	// 03:30 UTC is still the previous evening in New York.
	now := time.Date(2024, time.March, 2, 3, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01", Today(loc, now))
	assert.Equal(t, "2024-03-02", Today(time.UTC, now))
	assert.Equal(t, "2024-03-02", Today(nil, now))
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimezone, loc.String())

	_, err = LoadLocation("Mars/Olympus_Mons")
	assert.Error(t, err)
}
