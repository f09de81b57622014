package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"practicelog/internal/models"
	"practicelog/internal/store"
)

// CreateGoal adds a goal under a topic, numbered from the topic's current goals.
// repertoireID is optional and must name one of the caller's repertoire items.
func (s *Service) CreateGoal(ctx context.Context, topicID, description, repertoireID string) (*models.Goal, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, invalidf("description is required")
	}
	repertoireID = strings.TrimSpace(repertoireID)

	topic, err := s.gw.GetTopic(ctx, ownerID, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, notFoundf("topic %s", topicID)
	}
	if repertoireID != "" {
		if err := s.requireEntity(ctx, ownerID, models.EntityRepertoire, repertoireID); err != nil {
			return nil, err
		}
	}

	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		goals, err := s.gw.ListGoalsByTopic(ctx, ownerID, topic.ID)
		if err != nil {
			return nil, err
		}
		number := FormatGoalNumber(topic.TopicNumber, NextGoalSubNumber(goals))
		goal := &models.Goal{
			OwnerID:      ownerID,
			TopicID:      topic.ID,
			GoalNumber:   number,
			Description:  description,
			RepertoireID: repertoireID,
			CreatedAt:    s.now().UTC(),
		}
		err = s.gw.InsertGoal(ctx, goal)
		if err == nil {
			return goal, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return nil, err
		}
		s.log().Debug("goal number collided, retrying", "goal_number", number, "attempt", attempt)
	}
	return nil, fmt.Errorf("allocate goal number: %w", ErrConflict)
}

// GetGoal returns one goal.
func (s *Service) GetGoal(ctx context.Context, id string) (*models.Goal, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	return s.getGoal(ctx, ownerID, id)
}

func (s *Service) getGoal(ctx context.Context, ownerID, id string) (*models.Goal, error) {
	goal, err := s.gw.GetGoal(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, notFoundf("goal %s", id)
	}
	return goal, nil
}

// ListGoals returns a topic's goals.
func (s *Service) ListGoals(ctx context.Context, topicID string) ([]models.Goal, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	topic, err := s.gw.GetTopic(ctx, ownerID, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, notFoundf("topic %s", topicID)
	}
	return s.gw.ListGoalsByTopic(ctx, ownerID, topicID)
}

// UpdateGoalDescription replaces a goal's description.
func (s *Service) UpdateGoalDescription(ctx context.Context, id, description string) (*models.Goal, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, invalidf("description is required")
	}
	if err := s.gw.UpdateGoal(ctx, ownerID, id, store.GoalUpdate{Description: &description}); err != nil {
		return nil, err
	}
	return s.getGoal(ctx, ownerID, id)
}

// SetGoalComplete marks a goal complete as of today, or clears completion.
// Completing an already complete goal keeps its original completion date.
func (s *Service) SetGoalComplete(ctx context.Context, id string, complete bool) (*models.Goal, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	goal, err := s.getGoal(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if complete && goal.IsComplete {
		return goal, nil
	}
	date := ""
	if complete {
		date = s.Today()
	}
	update := store.GoalUpdate{IsComplete: &complete, DateCompleted: &date}
	if err := s.gw.UpdateGoal(ctx, ownerID, id, update); err != nil {
		return nil, err
	}
	return s.getGoal(ctx, ownerID, id)
}

// SetGoalRepertoire changes a goal's direct repertoire link; an empty id clears it.
// Stats are recomputed for both the previous and the new item.
func (s *Service) SetGoalRepertoire(ctx context.Context, id, repertoireID string) (*WriteResult, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	repertoireID = strings.TrimSpace(repertoireID)

	goal, err := s.getGoal(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if repertoireID != "" {
		if err := s.requireEntity(ctx, ownerID, models.EntityRepertoire, repertoireID); err != nil {
			return nil, err
		}
	}
	if err := s.gw.UpdateGoal(ctx, ownerID, id, store.GoalUpdate{RepertoireID: &repertoireID}); err != nil {
		return nil, err
	}

	result := &WriteResult{}
	s.recompute(ctx, ownerID, repertoireSet([]string{goal.RepertoireID, repertoireID}), result)
	return result, nil
}

// DeleteGoal deletes a goal and its logs. Stats are recomputed for the goal's direct
// repertoire item and for every item its logs were linked to, captured before the delete.
func (s *Service) DeleteGoal(ctx context.Context, id string) (*WriteResult, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	goal, err := s.getGoal(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	linked, err := s.gw.ListGoalLogRepertoireIDs(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	affected := repertoireSet([]string{goal.RepertoireID}, linked)

	if err := s.gw.DeleteGoal(ctx, ownerID, id); err != nil {
		return nil, err
	}

	result := &WriteResult{}
	s.recompute(ctx, ownerID, affected, result)
	return result, nil
}

// LinkGoalContent attaches content to a goal. Linking twice is not an error.
func (s *Service) LinkGoalContent(ctx context.Context, goalID, contentID string) error {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return err
	}
	err = s.gw.LinkGoalContent(ctx, ownerID, goalID, contentID)
	if errors.Is(err, store.ErrConflict) {
		return nil
	}
	return err
}

// UnlinkGoalContent detaches content from a goal.
func (s *Service) UnlinkGoalContent(ctx context.Context, goalID, contentID string) error {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return err
	}
	return s.gw.UnlinkGoalContent(ctx, ownerID, goalID, contentID)
}

// ListGoalContent returns the content items linked to a goal.
func (s *Service) ListGoalContent(ctx context.Context, goalID string) ([]models.Content, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := s.gw.ListGoalContentIDs(ctx, ownerID, goalID)
	if err != nil {
		return nil, err
	}
	items := make([]models.Content, 0, len(ids))
	for _, id := range ids {
		item, err := s.gw.GetContent(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, *item)
		}
	}
	return items, nil
}
