package models

import "time"

// Topic is a top-level practice area owned by one user.
type Topic struct {
	ID          string    `json:"id" yaml:"id"`
	OwnerID     string    `json:"owner_id" yaml:"-"`
	TopicNumber int       `json:"topic_number" yaml:"topic_number"`
	Title       string    `json:"title" yaml:"title"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// Goal is a numbered objective under a topic.
type Goal struct {
	ID            string    `json:"id" yaml:"id"`
	OwnerID       string    `json:"owner_id" yaml:"-"`
	TopicID       string    `json:"topic_id" yaml:"topic_id"`
	GoalNumber    string    `json:"goal_number" yaml:"goal_number"`
	Description   string    `json:"description" yaml:"description"`
	IsComplete    bool      `json:"is_complete" yaml:"is_complete"`
	DateCompleted string    `json:"date_completed,omitempty" yaml:"date_completed,omitempty"`
	RepertoireID  string    `json:"repertoire_id,omitempty" yaml:"repertoire_id,omitempty"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// Log is a dated practice entry recorded against a goal.
type Log struct {
	ID        string    `json:"id" yaml:"id"`
	OwnerID   string    `json:"owner_id" yaml:"-"`
	GoalID    string    `json:"goal_id" yaml:"goal_id"`
	Entry     string    `json:"entry" yaml:"entry"`
	Date      string    `json:"date" yaml:"date"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Content is a reusable reference resource.
type Content struct {
	ID        string      `json:"id" yaml:"id"`
	OwnerID   string      `json:"owner_id" yaml:"-"`
	Title     string      `json:"title" yaml:"title"`
	URL       string      `json:"url" yaml:"url"`
	Type      ContentType `json:"type" yaml:"type"`
	Tempo     string      `json:"tempo,omitempty" yaml:"tempo,omitempty"`
	Tags      []string    `json:"tags,omitempty" yaml:"tags,omitempty"`
	CreatedAt time.Time   `json:"created_at" yaml:"created_at"`
}

// Repertoire is a piece under study. PracticeCount and LastPracticed are derived
// by the stats recompute and never written directly.
type Repertoire struct {
	ID            string    `json:"id" yaml:"id"`
	OwnerID       string    `json:"owner_id" yaml:"-"`
	Title         string    `json:"title" yaml:"title"`
	Composer      string    `json:"composer" yaml:"composer"`
	Key           string    `json:"key,omitempty" yaml:"key,omitempty"`
	Progress      int       `json:"progress" yaml:"progress"`
	PracticeCount int       `json:"practice_count" yaml:"practice_count"`
	LastPracticed string    `json:"last_practiced,omitempty" yaml:"last_practiced,omitempty"`
	Tags          []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// Tag is a normalized label, unique per owner.
type Tag struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}

// Session is the per-day practice plan. GoalIDs is filled by the resolver.
type Session struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	SessionDate string   `json:"session_date"`
	GoalIDs     []string `json:"goal_ids"`
}

// DailyCount is the number of logs recorded on one calendar date.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// User is a local account that owns journal rows.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
