package calendar

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"practicelog/internal/models"
)

// DefaultTimezone is the zone "today" is computed in unless configured otherwise.
const DefaultTimezone = "America/New_York"

// LoadLocation resolves an IANA zone name. The embedded tzdata keeps this working
// on hosts without a zoneinfo database.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// Today returns now's calendar date in loc.
func Today(loc *time.Location, now time.Time) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(models.DateLayout)
}
