package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"practicelog/internal/models"
	"practicelog/internal/store"
)

// SessionCache remembers session ids per (owner, date). It is owned by the caller
// and safe for concurrent use; a nil cache disables caching.
type SessionCache struct {
	mu  sync.Mutex
	ids map[sessionKey]string
}

type sessionKey struct {
	owner string
	date  string
}

// NewSessionCache returns an empty cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{ids: map[sessionKey]string{}}
}

func (c *SessionCache) get(owner, date string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.ids[sessionKey{owner, date}]
	return id, ok
}

func (c *SessionCache) put(owner, date, id string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids[sessionKey{owner, date}] = id
}

// ResolveSession returns the caller's session for date with its goal ids, creating
// the session row on first access. Losing a concurrent create re-reads the winner.
func (s *Service) ResolveSession(ctx context.Context, date string) (*models.Session, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	date, err = models.ParseDate(date)
	if err != nil {
		return nil, invalidf("%v", err)
	}
	session, err := s.resolveSession(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}
	if session.GoalIDs, err = s.gw.ListSessionGoalIDs(ctx, session.ID); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) resolveSession(ctx context.Context, ownerID, date string) (*models.Session, error) {
	session, err := s.findSession(ctx, ownerID, date)
	if err != nil || session != nil {
		return session, err
	}

	session = &models.Session{OwnerID: ownerID, SessionDate: date, GoalIDs: []string{}}
	err = s.gw.InsertSession(ctx, session)
	if err == nil {
		s.sessions.put(ownerID, date, session.ID)
		return session, nil
	}
	if !errors.Is(err, store.ErrConflict) {
		return nil, err
	}

	session, err = s.findSession(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session for %s conflicted but could not be re-read", date)
	}
	return session, nil
}

// findSession reads the session without creating it and returns nil when absent.
func (s *Service) findSession(ctx context.Context, ownerID, date string) (*models.Session, error) {
	if id, ok := s.sessions.get(ownerID, date); ok {
		return &models.Session{ID: id, OwnerID: ownerID, SessionDate: date, GoalIDs: []string{}}, nil
	}
	session, err := s.gw.GetSessionByDate(ctx, ownerID, date)
	if err != nil || session == nil {
		return nil, err
	}
	session.GoalIDs = []string{}
	s.sessions.put(ownerID, date, session.ID)
	return session, nil
}

// AddGoalToSession attaches a goal to the session for date. Adding twice is not an error.
func (s *Service) AddGoalToSession(ctx context.Context, date, goalID string) error {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return err
	}
	date, err = models.ParseDate(date)
	if err != nil {
		return invalidf("%v", err)
	}
	if _, err := s.getGoal(ctx, ownerID, goalID); err != nil {
		return err
	}
	session, err := s.resolveSession(ctx, ownerID, date)
	if err != nil {
		return err
	}
	err = s.gw.InsertSessionGoal(ctx, session.ID, goalID)
	if errors.Is(err, store.ErrConflict) {
		return nil
	}
	return err
}

// RemoveGoalFromSession detaches a goal. A missing session or pairing is not an error.
func (s *Service) RemoveGoalFromSession(ctx context.Context, date, goalID string) error {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return err
	}
	date, err = models.ParseDate(date)
	if err != nil {
		return invalidf("%v", err)
	}
	session, err := s.findSession(ctx, ownerID, date)
	if err != nil || session == nil {
		return err
	}
	return s.gw.DeleteSessionGoal(ctx, session.ID, goalID)
}

// ListSessionGoalIDs returns the goal ids planned for date.
func (s *Service) ListSessionGoalIDs(ctx context.Context, date string) ([]string, error) {
	session, err := s.ResolveSession(ctx, date)
	if err != nil {
		return nil, err
	}
	return session.GoalIDs, nil
}

// ClearSession detaches every goal for date and keeps the session row.
func (s *Service) ClearSession(ctx context.Context, date string) error {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return err
	}
	date, err = models.ParseDate(date)
	if err != nil {
		return invalidf("%v", err)
	}
	session, err := s.findSession(ctx, ownerID, date)
	if err != nil || session == nil {
		return err
	}
	return s.gw.ClearSessionGoals(ctx, session.ID)
}
