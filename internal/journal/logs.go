package journal

import (
	"context"
	"errors"
	"strings"

	"practicelog/internal/models"
	"practicelog/internal/store"
)

// LogInput describes a practice entry to record.
type LogInput struct {
	GoalID        string
	Entry         string
	Date          string // YYYY-MM-DD; empty means today
	ContentIDs    []string
	RepertoireIDs []string
}

// CreateLog records a practice entry, links it to content and repertoire, and
// recomputes stats for the goal's direct item plus every requested repertoire id.
// Only a failed log insert aborts; later failures are reported on the result.
func (s *Service) CreateLog(ctx context.Context, in LogInput) (*LogResult, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	entry := strings.TrimSpace(in.Entry)
	if entry == "" {
		return nil, invalidf("entry is required")
	}
	date := s.Today()
	if strings.TrimSpace(in.Date) != "" {
		if date, err = models.ParseDate(in.Date); err != nil {
			return nil, invalidf("%v", err)
		}
	}

	goal, err := s.getGoal(ctx, ownerID, in.GoalID)
	if err != nil {
		return nil, err
	}

	log := &models.Log{
		OwnerID:   ownerID,
		GoalID:    goal.ID,
		Entry:     entry,
		Date:      date,
		CreatedAt: s.now().UTC(),
	}
	if err := s.gw.InsertLog(ctx, log); err != nil {
		return nil, err
	}

	result := &LogResult{Log: log}
	for _, contentID := range repertoireSet(in.ContentIDs) {
		err := s.gw.LinkLogContent(ctx, ownerID, log.ID, contentID)
		if err != nil && !errors.Is(err, store.ErrConflict) {
			s.log().Warn("link log content failed", "log_id", log.ID, "content_id", contentID, "error", err)
			result.fail(StepLinkContent, contentID, err)
		}
	}

	var linked []string
	for _, repertoireID := range repertoireSet(in.RepertoireIDs) {
		err := s.gw.LinkLogRepertoire(ctx, ownerID, log.ID, repertoireID)
		if err != nil && !errors.Is(err, store.ErrConflict) {
			s.log().Warn("link log repertoire failed", "log_id", log.ID, "repertoire_id", repertoireID, "error", err)
			result.fail(StepLinkRepertoire, repertoireID, err)
			// Ids that do not resolve for this owner have no stats to recompute.
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
		}
		linked = append(linked, repertoireID)
	}

	s.recompute(ctx, ownerID, repertoireSet([]string{goal.RepertoireID}, linked), &result.WriteResult)
	return result, nil
}

// GetLog returns one log.
func (s *Service) GetLog(ctx context.Context, id string) (*models.Log, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	return s.getLog(ctx, ownerID, id)
}

func (s *Service) getLog(ctx context.Context, ownerID, id string) (*models.Log, error) {
	log, err := s.gw.GetLog(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, notFoundf("log %s", id)
	}
	return log, nil
}

// ListLogs returns a goal's logs, newest practice date first.
func (s *Service) ListLogs(ctx context.Context, goalID string) ([]models.Log, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.getGoal(ctx, ownerID, goalID); err != nil {
		return nil, err
	}
	return s.gw.ListLogsByGoal(ctx, ownerID, goalID)
}

// UpdateLog replaces a log's text. Dates and links are untouched, so no stats change.
func (s *Service) UpdateLog(ctx context.Context, id, entry string) (*models.Log, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil, invalidf("entry is required")
	}
	if err := s.gw.UpdateLogEntry(ctx, ownerID, id, entry); err != nil {
		return nil, err
	}
	return s.getLog(ctx, ownerID, id)
}

// DeleteLog deletes a log and recomputes stats for the goal's direct repertoire item
// plus every item linked to the log, captured before the delete.
func (s *Service) DeleteLog(ctx context.Context, id string) (*WriteResult, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	log, err := s.getLog(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	goal, err := s.getGoal(ctx, ownerID, log.GoalID)
	if err != nil {
		return nil, err
	}
	linked, err := s.gw.ListLogRepertoireIDs(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	affected := repertoireSet([]string{goal.RepertoireID}, linked)

	if err := s.gw.DeleteLog(ctx, ownerID, id); err != nil {
		return nil, err
	}

	result := &WriteResult{}
	s.recompute(ctx, ownerID, affected, result)
	return result, nil
}
