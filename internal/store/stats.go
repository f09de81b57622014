package store

import (
	"context"
	"fmt"
)

// linkedLogsSQL selects the logs that count toward one repertoire item: logs on a goal
// that links the item directly, plus logs linked through log_repertoire. A log reached
// both ways is counted once.
const linkedLogsSQL = `
	FROM logs l
	WHERE l.owner_id = repertoire.owner_id
	  AND (
	    l.goal_id IN (SELECT g.id FROM goals g WHERE g.repertoire_id = repertoire.id)
	    OR l.id IN (SELECT lr.log_id FROM log_repertoire lr WHERE lr.repertoire_id = repertoire.id)
	  )`

// RecomputeRepertoireStats derives practice_count and last_practiced for one item from
// its current log linkage. It is idempotent and safe to call repeatedly.
func (s *Store) RecomputeRepertoireStats(ctx context.Context, ownerID, repertoireID string) error {
	if repertoireID == "" {
		return fmt.Errorf("repertoire id is required")
	}
	return s.execAffecting(ctx, `
		UPDATE repertoire SET
		  practice_count = (SELECT COUNT(*) `+linkedLogsSQL+`),
		  last_practiced = (SELECT MAX(l.log_date) `+linkedLogsSQL+`)
		WHERE owner_id = ? AND id = ?
	`, ownerID, repertoireID)
}
