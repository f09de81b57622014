package store

import (
	"context"
	"time"

	"practicelog/internal/models"
)

// TopicStore persists topics.
type TopicStore interface {
	InsertTopic(ctx context.Context, topic *models.Topic) error
	GetTopic(ctx context.Context, ownerID, id string) (*models.Topic, error)
	ListTopics(ctx context.Context, ownerID string) ([]models.Topic, error)
	UpdateTopicTitle(ctx context.Context, ownerID, id, title string) error
	DeleteTopic(ctx context.Context, ownerID, id string) error
	MaxTopicNumber(ctx context.Context, ownerID string) (int, error)
}

// GoalStore persists goals and their content links.
type GoalStore interface {
	InsertGoal(ctx context.Context, goal *models.Goal) error
	GetGoal(ctx context.Context, ownerID, id string) (*models.Goal, error)
	ListGoalsByTopic(ctx context.Context, ownerID, topicID string) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, ownerID, id string, update GoalUpdate) error
	DeleteGoal(ctx context.Context, ownerID, id string) error
	LinkGoalContent(ctx context.Context, ownerID, goalID, contentID string) error
	UnlinkGoalContent(ctx context.Context, ownerID, goalID, contentID string) error
	ListGoalContentIDs(ctx context.Context, ownerID, goalID string) ([]string, error)
}

// LogStore persists practice logs and their content/repertoire links.
type LogStore interface {
	InsertLog(ctx context.Context, log *models.Log) error
	GetLog(ctx context.Context, ownerID, id string) (*models.Log, error)
	ListLogsByGoal(ctx context.Context, ownerID, goalID string) ([]models.Log, error)
	ListLogsByDate(ctx context.Context, ownerID, date string) ([]models.Log, error)
	UpdateLogEntry(ctx context.Context, ownerID, id, entry string) error
	DeleteLog(ctx context.Context, ownerID, id string) error
	LinkLogContent(ctx context.Context, ownerID, logID, contentID string) error
	LinkLogRepertoire(ctx context.Context, ownerID, logID, repertoireID string) error
	ListLogContentIDs(ctx context.Context, ownerID, logID string) ([]string, error)
	ListLogRepertoireIDs(ctx context.Context, ownerID, logID string) ([]string, error)
	ListGoalLogRepertoireIDs(ctx context.Context, ownerID, goalID string) ([]string, error)
}

// LibraryStore persists content and repertoire items.
type LibraryStore interface {
	InsertContent(ctx context.Context, content *models.Content) error
	GetContent(ctx context.Context, ownerID, id string) (*models.Content, error)
	ListContent(ctx context.Context, ownerID string) ([]models.Content, error)
	UpdateContent(ctx context.Context, ownerID, id string, update ContentUpdate) error
	DeleteContent(ctx context.Context, ownerID, id string) error
	InsertRepertoire(ctx context.Context, item *models.Repertoire) error
	GetRepertoire(ctx context.Context, ownerID, id string) (*models.Repertoire, error)
	ListRepertoire(ctx context.Context, ownerID string) ([]models.Repertoire, error)
	UpdateRepertoire(ctx context.Context, ownerID, id string, update RepertoireUpdate) error
	DeleteRepertoire(ctx context.Context, ownerID, id string) error
}

// StatsStore recomputes derived repertoire statistics.
type StatsStore interface {
	RecomputeRepertoireStats(ctx context.Context, ownerID, repertoireID string) error
}

// TagStore persists tags and the polymorphic entity_tags join.
type TagStore interface {
	GetTagByName(ctx context.Context, ownerID, name string) (*models.Tag, error)
	InsertTag(ctx context.Context, tag *models.Tag) error
	ListTags(ctx context.Context, ownerID string) ([]models.Tag, error)
	ListEntityTags(ctx context.Context, ownerID string, kind models.EntityKind, entityID string) ([]models.Tag, error)
	LinkTag(ctx context.Context, ownerID string, kind models.EntityKind, entityID, tagID string) error
	UnlinkTag(ctx context.Context, ownerID string, kind models.EntityKind, entityID, tagID string) error
}

// SessionStore persists per-day sessions and their goal sets.
type SessionStore interface {
	GetSessionByDate(ctx context.Context, ownerID, date string) (*models.Session, error)
	InsertSession(ctx context.Context, session *models.Session) error
	ListSessionGoalIDs(ctx context.Context, sessionID string) ([]string, error)
	InsertSessionGoal(ctx context.Context, sessionID, goalID string) error
	DeleteSessionGoal(ctx context.Context, sessionID, goalID string) error
	ClearSessionGoals(ctx context.Context, sessionID string) error
}

// ActivityStore aggregates log activity for the calendar.
type ActivityStore interface {
	DailyLogCounts(ctx context.Context, ownerID, from, to string) ([]models.DailyCount, error)
}

// UserStore persists local accounts.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string, now time.Time) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

// Gateway is the full set of journal persistence operations.
type Gateway interface {
	TopicStore
	GoalStore
	LogStore
	LibraryStore
	StatsStore
	TagStore
	SessionStore
	ActivityStore
}

// GoalUpdate holds optional goal mutations. A non-nil empty RepertoireID or
// DateCompleted clears the column.
type GoalUpdate struct {
	Description   *string
	IsComplete    *bool
	DateCompleted *string
	RepertoireID  *string
}

// ContentUpdate holds optional content mutations.
type ContentUpdate struct {
	Title *string
	URL   *string
	Type  *models.ContentType
	Tempo *string
}

// RepertoireUpdate holds optional repertoire mutations. Stats columns are
// owned by RecomputeRepertoireStats and cannot be set here.
type RepertoireUpdate struct {
	Title    *string
	Composer *string
	Key      *string
	Progress *int
}

var (
	_ Gateway   = (*Store)(nil)
	_ UserStore = (*Store)(nil)
)
