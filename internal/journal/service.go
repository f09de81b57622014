// Package journal holds the consistency-sensitive practice journal operations:
// number allocation, tag deduplication, per-day sessions, repertoire stats fan-out
// and the yearly activity view. Every call is scoped to the user resolved by Identity.
package journal

import (
	"context"
	"log/slog"
	"time"

	"practicelog/internal/calendar"
	"practicelog/internal/store"
)

// maxAllocationAttempts bounds allocate-then-insert retries for topic and goal numbers.
const maxAllocationAttempts = 5

// Service implements the journal operations on top of a store.Gateway.
type Service struct {
	gw       store.Gateway
	identity Identity
	loc      *time.Location
	now      func() time.Time
	sessions *SessionCache
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for secondary-step warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithLocation sets the timezone used to compute "today".
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSessionCache lets the caller own a session id cache shared across services.
func WithSessionCache(cache *SessionCache) Option {
	return func(s *Service) { s.sessions = cache }
}

// New constructs a Service. Without WithLocation, dates use the default journal timezone.
func New(gw store.Gateway, identity Identity, opts ...Option) *Service {
	s := &Service{
		gw:       gw,
		identity: identity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.loc == nil {
		loc, err := calendar.LoadLocation(calendar.DefaultTimezone)
		if err != nil {
			loc = time.UTC
		}
		s.loc = loc
	}
	return s
}

// Location returns the timezone the service computes dates in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Today returns the current calendar date in the service timezone.
func (s *Service) Today() string {
	return calendar.Today(s.loc, s.now())
}

func (s *Service) owner(ctx context.Context) (string, error) {
	if s.identity == nil {
		return "", ErrUnauthenticated
	}
	id, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}
	return id, nil
}

func (s *Service) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// recompute invokes the stats procedure for every id, recording failures on result.
func (s *Service) recompute(ctx context.Context, ownerID string, ids []string, result *WriteResult) {
	for _, id := range ids {
		if err := s.gw.RecomputeRepertoireStats(ctx, ownerID, id); err != nil {
			s.log().Warn("repertoire stats recompute failed", "repertoire_id", id, "error", err)
			result.fail(StepRecomputeStats, id, err)
			continue
		}
		result.StatsUpdated = true
		result.Recomputed = append(result.Recomputed, id)
	}
}
