package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"practicelog/internal/models"
	"practicelog/internal/store"
)

// CreateTopic creates a topic with the next topic number. The store's uniqueness
// constraint turns a concurrent allocation into a retry instead of a duplicate.
func (s *Service) CreateTopic(ctx context.Context, title string) (*models.Topic, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalidf("title is required")
	}

	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		number, err := s.nextTopicNumber(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		topic := &models.Topic{
			OwnerID:     ownerID,
			TopicNumber: number,
			Title:       title,
			CreatedAt:   s.now().UTC(),
		}
		err = s.gw.InsertTopic(ctx, topic)
		if err == nil {
			return topic, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return nil, err
		}
		s.log().Debug("topic number collided, retrying", "topic_number", number, "attempt", attempt)
	}
	return nil, fmt.Errorf("allocate topic number: %w", ErrConflict)
}

// GetTopic returns one topic.
func (s *Service) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	topic, err := s.gw.GetTopic(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, notFoundf("topic %s", id)
	}
	return topic, nil
}

// ListTopics returns the caller's topics in number order.
func (s *Service) ListTopics(ctx context.Context) ([]models.Topic, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	return s.gw.ListTopics(ctx, ownerID)
}

// RenameTopic changes a topic title. The topic number is immutable.
func (s *Service) RenameTopic(ctx context.Context, id, title string) error {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return invalidf("title is required")
	}
	return s.gw.UpdateTopicTitle(ctx, ownerID, id, title)
}

// DeleteTopic deletes a topic with its goals and logs, then recomputes stats for
// every repertoire item those goals or logs referenced.
func (s *Service) DeleteTopic(ctx context.Context, id string) (*WriteResult, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	topic, err := s.gw.GetTopic(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, notFoundf("topic %s", id)
	}

	goals, err := s.gw.ListGoalsByTopic(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	var lists [][]string
	for _, goal := range goals {
		linked, err := s.gw.ListGoalLogRepertoireIDs(ctx, ownerID, goal.ID)
		if err != nil {
			return nil, err
		}
		lists = append(lists, []string{goal.RepertoireID}, linked)
	}
	affected := repertoireSet(lists...)

	if err := s.gw.DeleteTopic(ctx, ownerID, id); err != nil {
		return nil, err
	}

	result := &WriteResult{}
	s.recompute(ctx, ownerID, affected, result)
	return result, nil
}
