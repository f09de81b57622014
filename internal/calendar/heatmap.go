// Package calendar turns sparse daily log counts into a year-long heatmap grid.
package calendar

import (
	"fmt"
	"time"

	"practicelog/internal/models"
)

// Level thresholds: 0, 1-2, 3-4, 5-7, 8+.
const (
	LevelNone = iota
	LevelLow
	LevelMedium
	LevelHigh
	LevelMax
)

// Day is one calendar date in the grid.
type Day struct {
	Date    string       `json:"date"`
	Count   int          `json:"count"`
	Level   int          `json:"level"`
	Weekday time.Weekday `json:"weekday"`
}

// MonthLabel marks the week column where a month first appears.
type MonthLabel struct {
	Month time.Month `json:"month"`
	Label string     `json:"label"`
	Week  int        `json:"week"`
}

// Heatmap is a dense year of days grouped into Sunday-first weeks.
// The first week is left-padded with nil; the last week may be short.
type Heatmap struct {
	Year   int          `json:"year"`
	Days   []Day        `json:"days"`
	Weeks  [][]*Day     `json:"weeks"`
	Months []MonthLabel `json:"months"`
	Total  int          `json:"total"`
}

// Level buckets a daily count.
func Level(count int) int {
	switch {
	case count <= 0:
		return LevelNone
	case count <= 2:
		return LevelLow
	case count <= 4:
		return LevelMedium
	case count <= 7:
		return LevelHigh
	default:
		return LevelMax
	}
}

// Build fills every day of year from the sparse activity list. Entries for other
// years are ignored and repeated dates are summed.
func Build(year int, activity []models.DailyCount) (*Heatmap, error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("year %d out of range", year)
	}

	counts := make(map[string]int, len(activity))
	total := 0
	for _, entry := range activity {
		date, err := models.ParseDate(entry.Date)
		if err != nil {
			return nil, err
		}
		if entry.Count < 0 {
			return nil, fmt.Errorf("negative count %d for %s", entry.Count, date)
		}
		if date[:4] != fmt.Sprintf("%04d", year) {
			continue
		}
		counts[date] += entry.Count
		total += entry.Count
	}

	// Dates are calendar dates, so UTC arithmetic avoids DST gaps.
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(1, 0, 0)
	size := int(next.Sub(first).Hours() / 24)

	h := &Heatmap{
		Year:  year,
		Days:  make([]Day, 0, size),
		Total: total,
	}
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		date := d.Format(models.DateLayout)
		count := counts[date]
		h.Days = append(h.Days, Day{Date: date, Count: count, Level: Level(count), Weekday: d.Weekday()})
	}

	offset := int(first.Weekday())
	week := make([]*Day, offset, 7)
	month := time.Month(0)
	for i := range h.Days {
		day := &h.Days[i]
		week = append(week, day)
		if len(week) == 7 {
			h.Weeks = append(h.Weeks, week)
			week = make([]*Day, 0, 7)
		}

		m := first.AddDate(0, 0, i).Month()
		if m != month {
			month = m
			h.Months = append(h.Months, MonthLabel{Month: m, Label: m.String()[:3], Week: (offset + i) / 7})
		}
	}
	if len(week) > 0 {
		h.Weeks = append(h.Weeks, week)
	}
	return h, nil
}
