package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practicelog/internal/models"
)

func TestLevelBoundaries(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, LevelNone},
		{1, LevelLow},
		{2, LevelLow},
		{3, LevelMedium},
		{4, LevelMedium},
		{5, LevelHigh},
		{7, LevelHigh},
		{8, LevelMax},
		{100, LevelMax},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.count), "count %d", tt.count)
	}
}

func TestBuildLeapYear(t *testing.T) {
	h, err := Build(2024, []models.DailyCount{{Date: "2024-02-29", Count: 8}})
	require.NoError(t, err)

	require.Len(t, h.Days, 366)
	assert.Equal(t, 8, h.Total)
	assert.Equal(t, "2024-01-01", h.Days[0].Date)
	assert.Equal(t, "2024-12-31", h.Days[365].Date)

	for _, day := range h.Days {
		if day.Date == "2024-02-29" {
			assert.Equal(t, 8, day.Count)
			assert.Equal(t, LevelMax, day.Level)
			continue
		}
		assert.Equal(t, 0, day.Count, day.Date)
		assert.Equal(t, LevelNone, day.Level, day.Date)
	}
}

func TestBuildNonLeapYear(t *testing.T) {
	h, err := Build(2023, nil)
	require.NoError(t, err)
	assert.Len(t, h.Days, 365)
	assert.Zero(t, h.Total)
}

func TestBuildWeekAlignment(t *testing.T) {
	// 2025-01-01 is a Wednesday.
	h, err := Build(2025, nil)
	require.NoError(t, err)

	first := h.Weeks[0]
	require.Len(t, first, 7)
	assert.Nil(t, first[0])
	assert.Nil(t, first[1])
	assert.Nil(t, first[2])
	require.NotNil(t, first[3])
	assert.Equal(t, "2025-01-01", first[3].Date)
	assert.Equal(t, time.Wednesday, first[3].Weekday)

	for i, week := range h.Weeks[1:] {
		require.NotNil(t, week[0], "week %d", i+1)
		assert.Equal(t, time.Sunday, week[0].Weekday)
	}

	last := h.Weeks[len(h.Weeks)-1]
	assert.LessOrEqual(t, len(last), 7)
	assert.Equal(t, "2025-12-31", last[len(last)-1].Date)

	days := 0
	for _, week := range h.Weeks {
		for _, day := range week {
			if day != nil {
				days++
			}
		}
	}
	assert.Equal(t, 365, days)
}

func TestBuildSundayStartHasNoPadding(t *testing.T) {
	// 2023-01-01 is a Sunday.
	h, err := Build(2023, nil)
	require.NoError(t, err)
	require.NotNil(t, h.Weeks[0][0])
	assert.Equal(t, "2023-01-01", h.Weeks[0][0].Date)
}

func TestBuildMonthLabels(t *testing.T) {
	h, err := Build(2025, nil)
	require.NoError(t, err)
	require.Len(t, h.Months, 12)

	assert.Equal(t, MonthLabel{Month: time.January, Label: "Jan", Week: 0}, h.Months[0])
	// Feb 1 is day index 31; (3 + 31) / 7 = 4.
	assert.Equal(t, MonthLabel{Month: time.February, Label: "Feb", Week: 4}, h.Months[1])
	assert.Equal(t, time.December, h.Months[11].Month)

	for i := 1; i < len(h.Months); i++ {
		assert.GreaterOrEqual(t, h.Months[i].Week, h.Months[i-1].Week)
	}
}

func TestBuildTotalsAndFiltering(t *testing.T) {
	h, err := Build(2024, []models.DailyCount{
		{Date: "2024-03-01", Count: 2},
		{Date: "2024-03-01", Count: 1},
		{Date: "2023-12-31", Count: 50},
		{Date: "2024-07-04", Count: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, h.Total)
	byDate := map[string]Day{}
	for _, day := range h.Days {
		byDate[day.Date] = day
	}
	assert.Equal(t, 3, byDate["2024-03-01"].Count)
	assert.Equal(t, LevelMedium, byDate["2024-03-01"].Level)
	assert.Equal(t, LevelHigh, byDate["2024-07-04"].Level)
}

func TestBuildRejectsMalformedInput(t *testing.T) {
	_, err := Build(2024, []models.DailyCount{{Date: "2024-13-01", Count: 1}})
	assert.Error(t, err)

	_, err = Build(2024, []models.DailyCount{{Date: "2024-01-01", Count: -1}})
	assert.Error(t, err)

	_, err = Build(0, nil)
	assert.Error(t, err)
}
