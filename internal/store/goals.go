package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"practicelog/internal/models"
)

// InsertGoal inserts a goal. A duplicate goal number within the topic returns ErrConflict.
// The topic must belong to the goal's owner.
func (s *Store) InsertGoal(ctx context.Context, goal *models.Goal) error {
	if goal == nil {
		return fmt.Errorf("goal is required")
	}
	if err := assignID(&goal.ID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (id, owner_id, topic_id, goal_number, description, is_complete, date_completed, repertoire_id, created_at)
		SELECT ?, ?, t.id, ?, ?, ?, ?, ?, ?
		FROM topics t WHERE t.id = ? AND t.owner_id = ?
	`,
		goal.ID,
		goal.OwnerID,
		goal.GoalNumber,
		goal.Description,
		boolToInt(goal.IsComplete),
		nullIfEmpty(goal.DateCompleted),
		nullIfEmpty(goal.RepertoireID),
		formatTime(goal.CreatedAt),
		goal.TopicID,
		goal.OwnerID,
	)
	if err != nil {
		return classifyWriteError(err)
	}
	return requireAffected(res)
}

// GetGoal returns one goal, or nil when it does not exist for the owner.
func (s *Store) GetGoal(ctx context.Context, ownerID, id string) (*models.Goal, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, topic_id, goal_number, description, is_complete, date_completed, repertoire_id, created_at
		FROM goals WHERE owner_id = ? AND id = ?
	`, ownerID, id)
	return scanGoal(row)
}

// ListGoalsByTopic returns a topic's goals in creation order.
func (s *Store) ListGoalsByTopic(ctx context.Context, ownerID, topicID string) ([]models.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, topic_id, goal_number, description, is_complete, date_completed, repertoire_id, created_at
		FROM goals WHERE owner_id = ? AND topic_id = ?
		ORDER BY created_at ASC, id ASC
	`, ownerID, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		if goal != nil {
			goals = append(goals, *goal)
		}
	}
	return goals, rows.Err()
}

// UpdateGoal applies the non-nil fields of update.
func (s *Store) UpdateGoal(ctx context.Context, ownerID, id string, update GoalUpdate) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}

	set := []string{}
	args := []any{}

	if update.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *update.Description)
	}
	if update.IsComplete != nil {
		set = append(set, "is_complete = ?")
		args = append(args, boolToInt(*update.IsComplete))
	}
	if update.DateCompleted != nil {
		set = append(set, "date_completed = ?")
		args = append(args, nullIfEmpty(*update.DateCompleted))
	}
	if update.RepertoireID != nil {
		set = append(set, "repertoire_id = ?")
		args = append(args, nullIfEmpty(*update.RepertoireID))
	}
	if len(set) == 0 {
		return nil
	}

	if update.RepertoireID != nil && *update.RepertoireID != "" {
		item, err := s.GetRepertoire(ctx, ownerID, *update.RepertoireID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrNotFound
		}
	}

	args = append(args, ownerID, id)
	query := fmt.Sprintf("UPDATE goals SET %s WHERE owner_id = ? AND id = ?", strings.Join(set, ", "))
	return s.execAffecting(ctx, query, args...)
}

// DeleteGoal removes a goal; its logs and links cascade.
func (s *Store) DeleteGoal(ctx context.Context, ownerID, id string) error {
	return s.execAffecting(ctx, `DELETE FROM goals WHERE owner_id = ? AND id = ?`, ownerID, id)
}

// LinkGoalContent links content to a goal. Both must belong to the owner;
// a duplicate link returns ErrConflict.
func (s *Store) LinkGoalContent(ctx context.Context, ownerID, goalID, contentID string) error {
	return s.execAffecting(ctx, `
		INSERT INTO goal_content (goal_id, content_id)
		SELECT g.id, c.id
		FROM goals g JOIN content c ON c.owner_id = g.owner_id
		WHERE g.owner_id = ? AND g.id = ? AND c.id = ?
	`, ownerID, goalID, contentID)
}

// UnlinkGoalContent removes a goal/content link. A missing link is not an error.
func (s *Store) UnlinkGoalContent(ctx context.Context, ownerID, goalID, contentID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM goal_content
		WHERE goal_id = ? AND content_id = ?
		  AND goal_id IN (SELECT id FROM goals WHERE owner_id = ?)
	`, goalID, contentID, ownerID)
	return err
}

// ListGoalContentIDs returns the content ids linked to a goal.
func (s *Store) ListGoalContentIDs(ctx context.Context, ownerID, goalID string) ([]string, error) {
	return queryIDs(ctx, s.db, `
		SELECT gc.content_id
		FROM goal_content gc JOIN goals g ON g.id = gc.goal_id
		WHERE g.owner_id = ? AND gc.goal_id = ?
		ORDER BY gc.content_id
	`, ownerID, goalID)
}

func scanGoal(scanner rowScanner) (*models.Goal, error) {
	var (
		goal          models.Goal
		isComplete    int
		dateCompleted sql.NullString
		repertoireID  sql.NullString
		createdAt     string
	)
	err := scanner.Scan(
		&goal.ID,
		&goal.OwnerID,
		&goal.TopicID,
		&goal.GoalNumber,
		&goal.Description,
		&isComplete,
		&dateCompleted,
		&repertoireID,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	goal.IsComplete = isComplete != 0
	goal.DateCompleted = dateCompleted.String
	goal.RepertoireID = repertoireID.String
	if goal.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &goal, nil
}
