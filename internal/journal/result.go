package journal

import (
	"fmt"

	"practicelog/internal/models"
)

// Names of the secondary steps reported in StepFailure.
const (
	StepLinkContent    = "link_content"
	StepLinkRepertoire = "link_repertoire"
	StepRecomputeStats = "recompute_stats"
	StepSyncTags       = "sync_tags"
)

// StepFailure records a secondary step that failed after the primary write succeeded.
type StepFailure struct {
	Step string `json:"step"`
	ID   string `json:"id,omitempty"`
	Err  error  `json:"-"`
}

func (f StepFailure) Error() string {
	if f.ID == "" {
		return fmt.Sprintf("%s: %v", f.Step, f.Err)
	}
	return fmt.Sprintf("%s %s: %v", f.Step, f.ID, f.Err)
}

func (f StepFailure) Unwrap() error { return f.Err }

// WriteResult is the outcome of a multi-step write whose primary step succeeded.
// Failures is empty when every secondary step succeeded.
type WriteResult struct {
	StatsUpdated bool          `json:"stats_updated"`
	Recomputed   []string      `json:"recomputed,omitempty"`
	Failures     []StepFailure `json:"failures,omitempty"`
}

// Partial reports whether auxiliary state may be stale.
func (r *WriteResult) Partial() bool {
	return r != nil && len(r.Failures) > 0
}

func (r *WriteResult) fail(step, id string, err error) {
	r.Failures = append(r.Failures, StepFailure{Step: step, ID: id, Err: err})
}

// LogResult carries the created log alongside the fan-out outcome.
type LogResult struct {
	Log *models.Log `json:"log"`
	WriteResult
}

// repertoireSet merges id lists, dropping empties and duplicates while keeping first-seen order.
func repertoireSet(lists ...[]string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, list := range lists {
		for _, id := range list {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
