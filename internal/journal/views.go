package journal

import (
	"context"
	"fmt"

	"practicelog/internal/calendar"
	"practicelog/internal/models"
)

// DailyView is what the journal shows for one calendar date.
type DailyView struct {
	Date    string          `json:"date"`
	Session *models.Session `json:"session"`
	Logs    []models.Log    `json:"logs"`
}

// DailyView resolves the session for date and the logs recorded on it.
func (s *Service) DailyView(ctx context.Context, date string) (*DailyView, error) {
	session, err := s.ResolveSession(ctx, date)
	if err != nil {
		return nil, err
	}
	logs, err := s.gw.ListLogsByDate(ctx, session.OwnerID, session.SessionDate)
	if err != nil {
		return nil, err
	}
	return &DailyView{Date: session.SessionDate, Session: session, Logs: logs}, nil
}

// YearActivity builds the activity heatmap for one calendar year.
func (s *Service) YearActivity(ctx context.Context, year int) (*calendar.Heatmap, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	if year < 1 || year > 9999 {
		return nil, invalidf("year %d out of range", year)
	}
	from := fmt.Sprintf("%04d-01-01", year)
	to := fmt.Sprintf("%04d-12-31", year)
	counts, err := s.gw.DailyLogCounts(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	heatmap, err := calendar.Build(year, counts)
	if err != nil {
		return nil, invalidf("%v", err)
	}
	return heatmap, nil
}
