package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"practicelog/internal/models"
)

const logColumns = `id, owner_id, goal_id, entry, log_date, created_at`

// InsertLog inserts a practice log under a goal owned by the same user.
func (s *Store) InsertLog(ctx context.Context, log *models.Log) error {
	if log == nil {
		return fmt.Errorf("log is required")
	}
	if err := assignID(&log.ID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO logs (id, owner_id, goal_id, entry, log_date, created_at)
		SELECT ?, ?, g.id, ?, ?, ?
		FROM goals g WHERE g.id = ? AND g.owner_id = ?
	`, log.ID, log.OwnerID, log.Entry, log.Date, formatTime(log.CreatedAt), log.GoalID, log.OwnerID)
	if err != nil {
		return classifyWriteError(err)
	}
	return requireAffected(res)
}

// GetLog returns one log, or nil when it does not exist for the owner.
func (s *Store) GetLog(ctx context.Context, ownerID, id string) (*models.Log, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+logColumns+` FROM logs WHERE owner_id = ? AND id = ?`, ownerID, id)
	return scanLog(row)
}

// ListLogsByGoal returns a goal's logs, most recent practice date first.
func (s *Store) ListLogsByGoal(ctx context.Context, ownerID, goalID string) ([]models.Log, error) {
	return s.queryLogs(ctx, `
		SELECT `+logColumns+` FROM logs
		WHERE owner_id = ? AND goal_id = ?
		ORDER BY log_date DESC, created_at DESC
	`, ownerID, goalID)
}

// ListLogsByDate returns the owner's logs recorded for one calendar date.
func (s *Store) ListLogsByDate(ctx context.Context, ownerID, date string) ([]models.Log, error) {
	return s.queryLogs(ctx, `
		SELECT `+logColumns+` FROM logs
		WHERE owner_id = ? AND log_date = ?
		ORDER BY created_at ASC
	`, ownerID, date)
}

// UpdateLogEntry replaces the text of a log.
func (s *Store) UpdateLogEntry(ctx context.Context, ownerID, id, entry string) error {
	if strings.TrimSpace(entry) == "" {
		return fmt.Errorf("entry is required")
	}
	return s.execAffecting(ctx, `UPDATE logs SET entry = ? WHERE owner_id = ? AND id = ?`, entry, ownerID, id)
}

// DeleteLog removes a log and its links.
func (s *Store) DeleteLog(ctx context.Context, ownerID, id string) error {
	return s.execAffecting(ctx, `DELETE FROM logs WHERE owner_id = ? AND id = ?`, ownerID, id)
}

// LinkLogContent links content to a log. A duplicate link returns ErrConflict.
func (s *Store) LinkLogContent(ctx context.Context, ownerID, logID, contentID string) error {
	return s.execAffecting(ctx, `
		INSERT INTO log_content (log_id, content_id)
		SELECT l.id, c.id
		FROM logs l JOIN content c ON c.owner_id = l.owner_id
		WHERE l.owner_id = ? AND l.id = ? AND c.id = ?
	`, ownerID, logID, contentID)
}

// LinkLogRepertoire links a repertoire item to a log. A duplicate link returns ErrConflict.
func (s *Store) LinkLogRepertoire(ctx context.Context, ownerID, logID, repertoireID string) error {
	return s.execAffecting(ctx, `
		INSERT INTO log_repertoire (log_id, repertoire_id)
		SELECT l.id, r.id
		FROM logs l JOIN repertoire r ON r.owner_id = l.owner_id
		WHERE l.owner_id = ? AND l.id = ? AND r.id = ?
	`, ownerID, logID, repertoireID)
}

// ListLogContentIDs returns the content ids linked to a log.
func (s *Store) ListLogContentIDs(ctx context.Context, ownerID, logID string) ([]string, error) {
	return queryIDs(ctx, s.db, `
		SELECT lc.content_id
		FROM log_content lc JOIN logs l ON l.id = lc.log_id
		WHERE l.owner_id = ? AND lc.log_id = ?
		ORDER BY lc.content_id
	`, ownerID, logID)
}

// ListLogRepertoireIDs returns the repertoire ids linked to a log through the join table.
func (s *Store) ListLogRepertoireIDs(ctx context.Context, ownerID, logID string) ([]string, error) {
	return queryIDs(ctx, s.db, `
		SELECT lr.repertoire_id
		FROM log_repertoire lr JOIN logs l ON l.id = lr.log_id
		WHERE l.owner_id = ? AND lr.log_id = ?
		ORDER BY lr.repertoire_id
	`, ownerID, logID)
}

// ListGoalLogRepertoireIDs returns the distinct repertoire ids linked to any log of a goal.
func (s *Store) ListGoalLogRepertoireIDs(ctx context.Context, ownerID, goalID string) ([]string, error) {
	return queryIDs(ctx, s.db, `
		SELECT DISTINCT lr.repertoire_id
		FROM log_repertoire lr JOIN logs l ON l.id = lr.log_id
		WHERE l.owner_id = ? AND l.goal_id = ?
		ORDER BY lr.repertoire_id
	`, ownerID, goalID)
}

func (s *Store) queryLogs(ctx context.Context, query string, args ...any) ([]models.Log, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.Log{}
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		if log != nil {
			logs = append(logs, *log)
		}
	}
	return logs, rows.Err()
}

func scanLog(scanner rowScanner) (*models.Log, error) {
	var (
		log       models.Log
		createdAt string
	)
	if err := scanner.Scan(&log.ID, &log.OwnerID, &log.GoalID, &log.Entry, &log.Date, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var err error
	if log.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &log, nil
}
