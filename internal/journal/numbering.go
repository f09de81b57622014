package journal

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"practicelog/internal/models"
)

// NextTopicNumber returns max(existing topic numbers)+1 for the caller, or 1.
// It does not reserve the number; CreateTopic retries when an insert collides.
func (s *Service) NextTopicNumber(ctx context.Context) (int, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return 0, err
	}
	return s.nextTopicNumber(ctx, ownerID)
}

func (s *Service) nextTopicNumber(ctx context.Context, ownerID string) (int, error) {
	max, err := s.gw.MaxTopicNumber(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// NextGoalSubNumber returns max(sub-number)+1 over a topic's loaded goals, or 1.
// Gaps are never refilled: goals 3.1, 3.2 and 3.4 yield 5.
func NextGoalSubNumber(goals []models.Goal) int {
	max := 0
	for _, goal := range goals {
		_, sub, err := ParseGoalNumber(goal.GoalNumber)
		if err != nil {
			continue
		}
		if sub > max {
			max = sub
		}
	}
	return max + 1
}

// FormatGoalNumber renders "{topicNumber}.{sub}".
func FormatGoalNumber(topicNumber, sub int) string {
	return fmt.Sprintf("%d.%d", topicNumber, sub)
}

// ParseGoalNumber splits "{topicNumber}.{sub}".
func ParseGoalNumber(value string) (int, int, error) {
	topicPart, subPart, ok := strings.Cut(strings.TrimSpace(value), ".")
	if !ok {
		return 0, 0, fmt.Errorf("invalid goal number %q", value)
	}
	topic, err := strconv.Atoi(topicPart)
	if err != nil || topic < 1 {
		return 0, 0, fmt.Errorf("invalid goal number %q", value)
	}
	sub, err := strconv.Atoi(subPart)
	if err != nil || sub < 1 {
		return 0, 0, fmt.Errorf("invalid goal number %q", value)
	}
	return topic, sub, nil
}
