package api

import "practicelog/internal/models"

// TopicCreateRequest is the payload for POST /v1/topics.
type TopicCreateRequest struct {
	Title string `json:"title"`
}

// TopicPatchRequest is the payload for PATCH /v1/topics/{id}.
type TopicPatchRequest struct {
	Title string `json:"title"`
}

// GoalCreateRequest is the payload for POST /v1/topics/{id}/goals.
type GoalCreateRequest struct {
	Description  string `json:"description"`
	RepertoireID string `json:"repertoire_id,omitempty"`
}

// GoalPatchRequest holds optional goal changes. An empty RepertoireID clears the link.
type GoalPatchRequest struct {
	Description  *string `json:"description,omitempty"`
	IsComplete   *bool   `json:"is_complete,omitempty"`
	RepertoireID *string `json:"repertoire_id,omitempty"`
}

// GoalResponse is a goal plus the outcome of any stats fan-out the change caused.
type GoalResponse struct {
	models.Goal
	Result *WriteResponse `json:"result,omitempty"`
}

// LogCreateRequest is the payload for POST /v1/goals/{id}/logs. An empty Date means today.
type LogCreateRequest struct {
	Entry         string   `json:"entry"`
	Date          string   `json:"date,omitempty"`
	ContentIDs    []string `json:"content_ids,omitempty"`
	RepertoireIDs []string `json:"repertoire_ids,omitempty"`
}

// LogPatchRequest is the payload for PATCH /v1/logs/{id}.
type LogPatchRequest struct {
	Entry string `json:"entry"`
}

// StepFailure is a secondary step that failed after the primary write committed.
type StepFailure struct {
	Step  string `json:"step"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

// WriteResponse reports the outcome of a multi-step write.
type WriteResponse struct {
	StatsUpdated bool          `json:"stats_updated"`
	Partial      bool          `json:"partial"`
	Recomputed   []string      `json:"recomputed,omitempty"`
	Failures     []StepFailure `json:"failures,omitempty"`
}

// LogResponse is a created log plus its fan-out outcome.
type LogResponse struct {
	Log    models.Log    `json:"log"`
	Result WriteResponse `json:"result"`
}

// ContentRequest is the payload for POST and PUT on /v1/content. On PUT, nil fields are left unchanged.
type ContentRequest struct {
	Title *string   `json:"title,omitempty"`
	URL   *string   `json:"url,omitempty"`
	Type  *string   `json:"type,omitempty"`
	Tempo *string   `json:"tempo,omitempty"`
	Tags  *[]string `json:"tags,omitempty"`
}

// RepertoireRequest is the payload for POST and PUT on /v1/repertoire.
type RepertoireRequest struct {
	Title    *string   `json:"title,omitempty"`
	Composer *string   `json:"composer,omitempty"`
	Key      *string   `json:"key,omitempty"`
	Progress *int      `json:"progress,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

// SessionGoalRequest adds a goal to a day's session.
type SessionGoalRequest struct {
	GoalID string `json:"goal_id"`
}

// SessionResponse is the resolved session for one date with that day's logs.
type SessionResponse struct {
	Date    string         `json:"date"`
	Session models.Session `json:"session"`
	Logs    []models.Log   `json:"logs"`
}
