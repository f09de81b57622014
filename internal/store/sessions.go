package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"practicelog/internal/models"
)

// GetSessionByDate returns the owner's session for a date without its goal ids, or nil.
func (s *Store) GetSessionByDate(ctx context.Context, ownerID, date string) (*models.Session, error) {
	var session models.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, session_date FROM sessions WHERE owner_id = ? AND session_date = ?
	`, ownerID, date).Scan(&session.ID, &session.OwnerID, &session.SessionDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// InsertSession inserts a session. A second session for the same (owner, date) returns ErrConflict.
func (s *Store) InsertSession(ctx context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	if err := assignID(&session.ID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, owner_id, session_date, created_at) VALUES (?, ?, ?, datetime('now'))
	`, session.ID, session.OwnerID, session.SessionDate)
	return classifyWriteError(err)
}

// ListSessionGoalIDs returns the goal ids attached to a session.
func (s *Store) ListSessionGoalIDs(ctx context.Context, sessionID string) ([]string, error) {
	return queryIDs(ctx, s.db, `
		SELECT sg.goal_id
		FROM session_goals sg JOIN goals g ON g.id = sg.goal_id
		WHERE sg.session_id = ?
		ORDER BY g.goal_number
	`, sessionID)
}

// InsertSessionGoal attaches a goal owned by the session's owner. An existing pairing
// returns ErrConflict; a goal outside the owner's data returns ErrNotFound.
func (s *Store) InsertSessionGoal(ctx context.Context, sessionID, goalID string) error {
	return s.execAffecting(ctx, `
		INSERT INTO session_goals (session_id, goal_id)
		SELECT s.id, g.id
		FROM sessions s JOIN goals g ON g.owner_id = s.owner_id
		WHERE s.id = ? AND g.id = ?
	`, sessionID, goalID)
}

// DeleteSessionGoal detaches a goal. A missing pairing is not an error.
func (s *Store) DeleteSessionGoal(ctx context.Context, sessionID, goalID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_goals WHERE session_id = ? AND goal_id = ?`, sessionID, goalID)
	return err
}

// ClearSessionGoals detaches every goal, keeping the session row.
func (s *Store) ClearSessionGoals(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_goals WHERE session_id = ?`, sessionID)
	return err
}
