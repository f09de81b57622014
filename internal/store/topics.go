package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"practicelog/internal/models"
)

// InsertTopic inserts a topic. A duplicate topic number for the owner returns ErrConflict.
func (s *Store) InsertTopic(ctx context.Context, topic *models.Topic) error {
	if topic == nil {
		return fmt.Errorf("topic is required")
	}
	if err := assignID(&topic.ID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO topics (id, owner_id, topic_number, title, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, topic.ID, topic.OwnerID, topic.TopicNumber, topic.Title, formatTime(topic.CreatedAt))
	return classifyWriteError(err)
}

// GetTopic returns one topic, or nil when it does not exist for the owner.
func (s *Store) GetTopic(ctx context.Context, ownerID, id string) (*models.Topic, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, topic_number, title, created_at
		FROM topics WHERE owner_id = ? AND id = ?
	`, ownerID, id)
	return scanTopic(row)
}

// ListTopics returns the owner's topics ordered by topic number.
func (s *Store) ListTopics(ctx context.Context, ownerID string) ([]models.Topic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, topic_number, title, created_at
		FROM topics WHERE owner_id = ?
		ORDER BY topic_number ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		if topic != nil {
			topics = append(topics, *topic)
		}
	}
	return topics, rows.Err()
}

// UpdateTopicTitle renames a topic. The topic number never changes.
func (s *Store) UpdateTopicTitle(ctx context.Context, ownerID, id, title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	return s.execAffecting(ctx, `UPDATE topics SET title = ? WHERE owner_id = ? AND id = ?`, title, ownerID, id)
}

// DeleteTopic removes a topic; goals, logs and their links cascade.
func (s *Store) DeleteTopic(ctx context.Context, ownerID, id string) error {
	return s.execAffecting(ctx, `DELETE FROM topics WHERE owner_id = ? AND id = ?`, ownerID, id)
}

// MaxTopicNumber returns the highest topic number for the owner, or 0.
func (s *Store) MaxTopicNumber(ctx context.Context, ownerID string) (int, error) {
	var max int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(topic_number), 0) FROM topics WHERE owner_id = ?`, ownerID).Scan(&max)
	if err != nil {
		return 0, err
	}
	return max, nil
}

func scanTopic(scanner rowScanner) (*models.Topic, error) {
	var (
		topic     models.Topic
		createdAt string
	)
	if err := scanner.Scan(&topic.ID, &topic.OwnerID, &topic.TopicNumber, &topic.Title, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var err error
	if topic.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &topic, nil
}
