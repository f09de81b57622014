package store

import (
	"context"

	"practicelog/internal/models"
)

// DailyLogCounts returns the number of logs per date in [from, to], skipping empty days.
func (s *Store) DailyLogCounts(ctx context.Context, ownerID, from, to string) ([]models.DailyCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT log_date, COUNT(*)
		FROM logs
		WHERE owner_id = ? AND log_date >= ? AND log_date <= ?
		GROUP BY log_date
		ORDER BY log_date
	`, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.DailyCount{}
	for rows.Next() {
		var day models.DailyCount
		if err := rows.Scan(&day.Date, &day.Count); err != nil {
			return nil, err
		}
		counts = append(counts, day)
	}
	return counts, rows.Err()
}
