package store

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"practicelog/internal/models"
)

const (
	ownerA = "owner-a"
	ownerB = "owner-b"
)

// testStore creates a temporary store for testing.
func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func mustTopic(t *testing.T, st *Store, owner string, number int, title string) *models.Topic {
	t.Helper()
	topic := &models.Topic{OwnerID: owner, TopicNumber: number, Title: title, CreatedAt: time.Now()}
	if err := st.InsertTopic(context.Background(), topic); err != nil {
		t.Fatalf("insert topic: %v", err)
	}
	return topic
}

func mustGoal(t *testing.T, st *Store, topic *models.Topic, number, repertoireID string) *models.Goal {
	t.Helper()
	goal := &models.Goal{
		OwnerID:      topic.OwnerID,
		TopicID:      topic.ID,
		GoalNumber:   number,
		Description:  "goal " + number,
		RepertoireID: repertoireID,
		CreatedAt:    time.Now(),
	}
	if err := st.InsertGoal(context.Background(), goal); err != nil {
		t.Fatalf("insert goal: %v", err)
	}
	return goal
}

func mustLog(t *testing.T, st *Store, goal *models.Goal, date string) *models.Log {
	t.Helper()
	log := &models.Log{OwnerID: goal.OwnerID, GoalID: goal.ID, Entry: "practiced", Date: date, CreatedAt: time.Now()}
	if err := st.InsertLog(context.Background(), log); err != nil {
		t.Fatalf("insert log: %v", err)
	}
	return log
}

func mustRepertoire(t *testing.T, st *Store, owner, title string) *models.Repertoire {
	t.Helper()
	item := &models.Repertoire{OwnerID: owner, Title: title, Composer: "Bach", Progress: 1, CreatedAt: time.Now()}
	if err := st.InsertRepertoire(context.Background(), item); err != nil {
		t.Fatalf("insert repertoire: %v", err)
	}
	return item
}

func mustContent(t *testing.T, st *Store, owner, title string) *models.Content {
	t.Helper()
	content := &models.Content{OwnerID: owner, Title: title, URL: "https://example.com/" + title, Type: models.ContentVideo, CreatedAt: time.Now()}
	if err := st.InsertContent(context.Background(), content); err != nil {
		t.Fatalf("insert content: %v", err)
	}
	return content
}

func TestTopicCRUD(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	scales := mustTopic(t, st, ownerA, 1, "Scales")
	mustTopic(t, st, ownerA, 2, "Arpeggios")
	mustTopic(t, st, ownerB, 1, "Other owner")

	got, err := st.GetTopic(ctx, ownerA, scales.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Title != "Scales" || got.TopicNumber != 1 {
		t.Fatalf("unexpected topic: %+v", got)
	}

	topics, err := st.ListTopics(ctx, ownerA)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(topics) != 2 || topics[0].TopicNumber != 1 || topics[1].TopicNumber != 2 {
		t.Fatalf("unexpected topics: %+v", topics)
	}

	max, err := st.MaxTopicNumber(ctx, ownerA)
	if err != nil {
		t.Fatalf("max: %v", err)
	}
	if max != 2 {
		t.Fatalf("expected max 2, got %d", max)
	}

	if err := st.UpdateTopicTitle(ctx, ownerA, scales.ID, "Major scales"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, _ = st.GetTopic(ctx, ownerA, scales.ID)
	if got.Title != "Major scales" || got.TopicNumber != 1 {
		t.Fatalf("rename changed wrong fields: %+v", got)
	}

	if err := st.DeleteTopic(ctx, ownerA, scales.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.DeleteTopic(ctx, ownerA, scales.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestInsertTopicDuplicateNumber(t *testing.T) {
	st := testStore(t)
	mustTopic(t, st, ownerA, 1, "Scales")

	err := st.InsertTopic(context.Background(), &models.Topic{OwnerID: ownerA, TopicNumber: 1, Title: "Again", CreatedAt: time.Now()})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestOwnerScoping(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	topic := mustTopic(t, st, ownerA, 1, "Scales")
	goal := mustGoal(t, st, topic, "1.1", "")

	got, err := st.GetTopic(ctx, ownerB, topic.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatal("other owner must not see topic")
	}

	if err := st.UpdateTopicTitle(ctx, ownerB, topic.ID, "Stolen"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-owner rename, got %v", err)
	}

	foreign := &models.Goal{OwnerID: ownerB, TopicID: topic.ID, GoalNumber: "1.2", Description: "x", CreatedAt: time.Now()}
	if err := st.InsertGoal(ctx, foreign); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for goal under foreign topic, got %v", err)
	}

	foreignLog := &models.Log{OwnerID: ownerB, GoalID: goal.ID, Entry: "x", Date: "2024-01-01", CreatedAt: time.Now()}
	if err := st.InsertLog(ctx, foreignLog); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for log under foreign goal, got %v", err)
	}

	otherContent := mustContent(t, st, ownerB, "other")
	if err := st.LinkGoalContent(ctx, ownerA, goal.ID, otherContent.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-owner content link, got %v", err)
	}
}

func TestGoalCRUD(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	topic := mustTopic(t, st, ownerA, 3, "Etudes")
	piece := mustRepertoire(t, st, ownerA, "Prelude")
	goal := mustGoal(t, st, topic, "3.1", piece.ID)
	mustGoal(t, st, topic, "3.2", "")

	dup := &models.Goal{OwnerID: ownerA, TopicID: topic.ID, GoalNumber: "3.1", Description: "dup", CreatedAt: time.Now()}
	if err := st.InsertGoal(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate goal number, got %v", err)
	}

	goals, err := st.ListGoalsByTopic(ctx, ownerA, topic.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(goals))
	}

	complete := true
	date := "2024-05-01"
	if err := st.UpdateGoal(ctx, ownerA, goal.ID, GoalUpdate{IsComplete: &complete, DateCompleted: &date}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := st.GetGoal(ctx, ownerA, goal.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsComplete || got.DateCompleted != date || got.RepertoireID != piece.ID {
		t.Fatalf("unexpected goal after update: %+v", got)
	}

	empty := ""
	if err := st.UpdateGoal(ctx, ownerA, goal.ID, GoalUpdate{RepertoireID: &empty, DateCompleted: &empty}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ = st.GetGoal(ctx, ownerA, goal.ID)
	if got.RepertoireID != "" || got.DateCompleted != "" {
		t.Fatalf("expected cleared fields, got %+v", got)
	}

	missing := "missing"
	if err := st.UpdateGoal(ctx, ownerA, goal.ID, GoalUpdate{RepertoireID: &missing}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown repertoire, got %v", err)
	}

	if err := st.DeleteGoal(ctx, ownerA, goal.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = st.GetGoal(ctx, ownerA, goal.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Fatal("expected goal to be deleted")
	}
}

func TestGoalContentLinks(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	topic := mustTopic(t, st, ownerA, 1, "Scales")
	goal := mustGoal(t, st, topic, "1.1", "")
	video := mustContent(t, st, ownerA, "video")

	if err := st.LinkGoalContent(ctx, ownerA, goal.ID, video.ID); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := st.LinkGoalContent(ctx, ownerA, goal.ID, video.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate link, got %v", err)
	}

	ids, err := st.ListGoalContentIDs(ctx, ownerA, goal.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 1 || ids[0] != video.ID {
		t.Fatalf("unexpected content ids: %v", ids)
	}

	if err := st.UnlinkGoalContent(ctx, ownerA, goal.ID, video.ID); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	if err := st.UnlinkGoalContent(ctx, ownerA, goal.ID, video.ID); err != nil {
		t.Fatalf("unlink missing should succeed: %v", err)
	}
	ids, _ = st.ListGoalContentIDs(ctx, ownerA, goal.ID)
	if len(ids) != 0 {
		t.Fatalf("expected no links, got %v", ids)
	}
}

func TestLogsAndLinks(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	topic := mustTopic(t, st, ownerA, 1, "Scales")
	goal := mustGoal(t, st, topic, "1.1", "")
	older := mustLog(t, st, goal, "2024-03-01")
	newer := mustLog(t, st, goal, "2024-03-05")

	logs, err := st.ListLogsByGoal(ctx, ownerA, goal.ID)
	if err != nil {
		t.Fatalf("list by goal: %v", err)
	}
	if len(logs) != 2 || logs[0].ID != newer.ID || logs[1].ID != older.ID {
		t.Fatalf("expected newest first, got %+v", logs)
	}

	byDate, err := st.ListLogsByDate(ctx, ownerA, "2024-03-01")
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(byDate) != 1 || byDate[0].ID != older.ID {
		t.Fatalf("unexpected logs by date: %+v", byDate)
	}

	if err := st.UpdateLogEntry(ctx, ownerA, older.ID, "slow practice"); err != nil {
		t.Fatalf("update entry: %v", err)
	}
	got, _ := st.GetLog(ctx, ownerA, older.ID)
	if got.Entry != "slow practice" || got.Date != "2024-03-01" {
		t.Fatalf("unexpected log: %+v", got)
	}

	piece := mustRepertoire(t, st, ownerA, "Invention")
	video := mustContent(t, st, ownerA, "lesson")
	if err := st.LinkLogRepertoire(ctx, ownerA, older.ID, piece.ID); err != nil {
		t.Fatalf("link repertoire: %v", err)
	}
	if err := st.LinkLogRepertoire(ctx, ownerA, older.ID, piece.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := st.LinkLogRepertoire(ctx, ownerA, newer.ID, piece.ID); err != nil {
		t.Fatalf("link repertoire newer: %v", err)
	}
	if err := st.LinkLogContent(ctx, ownerA, older.ID, video.ID); err != nil {
		t.Fatalf("link content: %v", err)
	}

	contentIDs, _ := st.ListLogContentIDs(ctx, ownerA, older.ID)
	if len(contentIDs) != 1 || contentIDs[0] != video.ID {
		t.Fatalf("unexpected content ids: %v", contentIDs)
	}
	repIDs, _ := st.ListLogRepertoireIDs(ctx, ownerA, older.ID)
	if len(repIDs) != 1 || repIDs[0] != piece.ID {
		t.Fatalf("unexpected repertoire ids: %v", repIDs)
	}
	goalRepIDs, _ := st.ListGoalLogRepertoireIDs(ctx, ownerA, goal.ID)
	if len(goalRepIDs) != 1 || goalRepIDs[0] != piece.ID {
		t.Fatalf("expected one distinct repertoire id, got %v", goalRepIDs)
	}

	if err := st.DeleteLog(ctx, ownerA, older.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	repIDs, _ = st.ListLogRepertoireIDs(ctx, ownerA, older.ID)
	if len(repIDs) != 0 {
		t.Fatalf("expected links to cascade, got %v", repIDs)
	}
}

func TestDeleteTopicCascades(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	topic := mustTopic(t, st, ownerA, 1, "Scales")
	goal := mustGoal(t, st, topic, "1.1", "")
	log := mustLog(t, st, goal, "2024-01-02")

	if err := st.DeleteTopic(ctx, ownerA, topic.ID); err != nil {
		t.Fatalf("delete topic: %v", err)
	}
	if got, _ := st.GetGoal(ctx, ownerA, goal.ID); got != nil {
		t.Fatal("expected goal to cascade")
	}
	if got, _ := st.GetLog(ctx, ownerA, log.ID); got != nil {
		t.Fatal("expected log to cascade")
	}
}

func TestRecomputeRepertoireStats(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	piece := mustRepertoire(t, st, ownerA, "Sonata")
	topic := mustTopic(t, st, ownerA, 1, "Pieces")
	direct := mustGoal(t, st, topic, "1.1", piece.ID)
	other := mustGoal(t, st, topic, "1.2", "")

	mustLog(t, st, direct, "2024-02-01")
	both := mustLog(t, st, direct, "2024-02-03")
	viaJoin := mustLog(t, st, other, "2024-02-10")
	mustLog(t, st, other, "2024-03-01")

	if err := st.LinkLogRepertoire(ctx, ownerA, both.ID, piece.ID); err != nil {
		t.Fatalf("link both: %v", err)
	}
	if err := st.LinkLogRepertoire(ctx, ownerA, viaJoin.ID, piece.ID); err != nil {
		t.Fatalf("link join: %v", err)
	}

	if err := st.RecomputeRepertoireStats(ctx, ownerA, piece.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	got, _ := st.GetRepertoire(ctx, ownerA, piece.ID)
	if got.PracticeCount != 3 {
		t.Fatalf("expected 3 distinct logs, got %d", got.PracticeCount)
	}
	if got.LastPracticed != "2024-02-10" {
		t.Fatalf("expected last practiced 2024-02-10, got %q", got.LastPracticed)
	}

	if err := st.RecomputeRepertoireStats(ctx, ownerA, piece.ID); err != nil {
		t.Fatalf("second recompute: %v", err)
	}
	again, _ := st.GetRepertoire(ctx, ownerA, piece.ID)
	if again.PracticeCount != got.PracticeCount || again.LastPracticed != got.LastPracticed {
		t.Fatalf("recompute not idempotent: %+v vs %+v", got, again)
	}

	if err := st.DeleteGoal(ctx, ownerA, direct.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	if err := st.RecomputeRepertoireStats(ctx, ownerA, piece.ID); err != nil {
		t.Fatalf("recompute after delete: %v", err)
	}
	got, _ = st.GetRepertoire(ctx, ownerA, piece.ID)
	if got.PracticeCount != 1 || got.LastPracticed != "2024-02-10" {
		t.Fatalf("unexpected stats after goal delete: %+v", got)
	}

	if err := st.RecomputeRepertoireStats(ctx, ownerB, piece.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
}

func TestPragmasSurviveConnectionRecycle(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	piece := mustRepertoire(t, st, ownerA, "Partita")
	topic := mustTopic(t, st, ownerA, 1, "Bach")
	goal := mustGoal(t, st, topic, "1.1", "")
	entry := mustLog(t, st, goal, "2024-04-02")
	if err := st.LinkLogRepertoire(ctx, ownerA, entry.ID, piece.ID); err != nil {
		t.Fatalf("link: %v", err)
	}

	st.db.SetConnMaxLifetime(time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	var foreignKeys int
	if err := st.db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
		t.Fatalf("read pragma: %v", err)
	}
	if foreignKeys != 1 {
		t.Fatalf("expected foreign_keys on after recycle, got %d", foreignKeys)
	}

	time.Sleep(20 * time.Millisecond)
	if err := st.DeleteGoal(ctx, ownerA, goal.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	var orphans int
	if err := st.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM logs WHERE goal_id = ?", goal.ID).Scan(&orphans); err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("expected logs to cascade with their goal, got %d", orphans)
	}

	if err := st.RecomputeRepertoireStats(ctx, ownerA, piece.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	got, _ := st.GetRepertoire(ctx, ownerA, piece.ID)
	if got.PracticeCount != 0 {
		t.Fatalf("expected no practice after cascade, got %d", got.PracticeCount)
	}
}

func TestSQLiteDSNCarriesPragmas(t *testing.T) {
	dsn, err := sqliteDSN("/tmp/practicelog.db")
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	u, err := url.Parse(dsn)
	if err != nil {
		t.Fatalf("parse dsn: %v", err)
	}
	got := u.Query()["_pragma"]
	if len(got) != len(connPragmas) {
		t.Fatalf("expected %d pragmas, got %v", len(connPragmas), got)
	}
	for i := range connPragmas {
		if got[i] != connPragmas[i] {
			t.Fatalf("pragma %d: expected %q, got %q", i, connPragmas[i], got[i])
		}
	}

	if _, err := sqliteDSN(""); err == nil {
		t.Fatal("expected empty path to fail")
	}
}

func TestRecomputeRepertoireStatsNoLogs(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	piece := mustRepertoire(t, st, ownerA, "Nocturne")

	if err := st.RecomputeRepertoireStats(ctx, ownerA, piece.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	got, _ := st.GetRepertoire(ctx, ownerA, piece.ID)
	if got.PracticeCount != 0 || got.LastPracticed != "" {
		t.Fatalf("expected zero stats, got %+v", got)
	}
}

func TestContentCRUD(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	bad := &models.Content{OwnerID: ownerA, Title: "x", Type: "podcast", CreatedAt: time.Now()}
	if err := st.InsertContent(ctx, bad); err == nil {
		t.Fatal("expected invalid content type to be rejected")
	}

	video := mustContent(t, st, ownerA, "b-video")
	mustContent(t, st, ownerA, "a-article")

	items, err := st.ListContent(ctx, ownerA)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].Title != "a-article" {
		t.Fatalf("expected title order, got %+v", items)
	}

	tempo := "80 bpm"
	kind := models.ContentYouTube
	if err := st.UpdateContent(ctx, ownerA, video.ID, ContentUpdate{Tempo: &tempo, Type: &kind}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := st.GetContent(ctx, ownerA, video.ID)
	if got.Tempo != tempo || got.Type != models.ContentYouTube {
		t.Fatalf("unexpected content: %+v", got)
	}

	if err := st.UpdateContent(ctx, ownerA, "missing", ContentUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty update on missing row, got %v", err)
	}

	if err := st.DeleteContent(ctx, ownerA, video.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.DeleteContent(ctx, ownerA, video.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepertoireCRUD(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	bad := &models.Repertoire{OwnerID: ownerA, Title: "x", Progress: 7, CreatedAt: time.Now()}
	if err := st.InsertRepertoire(ctx, bad); err == nil {
		t.Fatal("expected progress 7 to be rejected")
	}

	piece := mustRepertoire(t, st, ownerA, "Partita")
	progress := 4
	key := "D minor"
	if err := st.UpdateRepertoire(ctx, ownerA, piece.ID, RepertoireUpdate{Progress: &progress, Key: &key}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := st.GetRepertoire(ctx, ownerA, piece.ID)
	if got.Progress != 4 || got.Key != key {
		t.Fatalf("unexpected repertoire: %+v", got)
	}

	invalid := 0
	if err := st.UpdateRepertoire(ctx, ownerA, piece.ID, RepertoireUpdate{Progress: &invalid}); err == nil {
		t.Fatal("expected progress 0 to be rejected")
	}

	topic := mustTopic(t, st, ownerA, 1, "Pieces")
	goal := mustGoal(t, st, topic, "1.1", piece.ID)

	if err := st.DeleteRepertoire(ctx, ownerA, piece.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	gotGoal, _ := st.GetGoal(ctx, ownerA, goal.ID)
	if gotGoal == nil || gotGoal.RepertoireID != "" {
		t.Fatalf("expected goal to survive with link cleared, got %+v", gotGoal)
	}
}

func TestTags(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	jazz := &models.Tag{OwnerID: ownerA, Name: "jazz"}
	if err := st.InsertTag(ctx, jazz); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := st.InsertTag(ctx, &models.Tag{OwnerID: ownerA, Name: "jazz"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	got, err := st.GetTagByName(ctx, ownerA, "jazz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != jazz.ID {
		t.Fatalf("unexpected tag: %+v", got)
	}
	if got, _ := st.GetTagByName(ctx, ownerB, "jazz"); got != nil {
		t.Fatal("tag must be scoped to owner")
	}

	video := mustContent(t, st, ownerA, "standards")
	if err := st.LinkTag(ctx, ownerA, models.EntityContent, video.ID, jazz.ID); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := st.LinkTag(ctx, ownerA, models.EntityContent, video.ID, jazz.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate link, got %v", err)
	}
	if err := st.LinkTag(ctx, ownerA, "topic", video.ID, jazz.ID); err == nil {
		t.Fatal("expected invalid entity kind to be rejected")
	}

	tags, err := st.ListEntityTags(ctx, ownerA, models.EntityContent, video.ID)
	if err != nil {
		t.Fatalf("list entity tags: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "jazz" {
		t.Fatalf("unexpected entity tags: %+v", tags)
	}

	content, _ := st.GetContent(ctx, ownerA, video.ID)
	if len(content.Tags) != 1 || content.Tags[0] != "jazz" {
		t.Fatalf("expected content to carry tag names, got %v", content.Tags)
	}

	if err := st.UnlinkTag(ctx, ownerA, models.EntityContent, video.ID, jazz.ID); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	if err := st.UnlinkTag(ctx, ownerA, models.EntityContent, video.ID, jazz.ID); err != nil {
		t.Fatalf("unlink missing should succeed: %v", err)
	}

	if err := st.LinkTag(ctx, ownerA, models.EntityContent, video.ID, jazz.ID); err != nil {
		t.Fatalf("relink: %v", err)
	}
	if err := st.DeleteContent(ctx, ownerA, video.ID); err != nil {
		t.Fatalf("delete content: %v", err)
	}
	tags, _ = st.ListEntityTags(ctx, ownerA, models.EntityContent, video.ID)
	if len(tags) != 0 {
		t.Fatalf("expected tag links removed with content, got %+v", tags)
	}

	all, _ := st.ListTags(ctx, ownerA)
	if len(all) != 1 {
		t.Fatalf("tag row should survive entity delete, got %+v", all)
	}
}

func TestTagLinksAreOwnerScoped(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	theirs := &models.Tag{OwnerID: ownerB, Name: "private"}
	if err := st.InsertTag(ctx, theirs); err != nil {
		t.Fatalf("insert: %v", err)
	}
	mine := mustContent(t, st, ownerA, "etudes")
	if err := st.LinkTag(ctx, ownerA, models.EntityContent, mine.ID, theirs.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another owner's tag, got %v", err)
	}

	shared := mustContent(t, st, ownerB, "shared")
	if err := st.LinkTag(ctx, ownerB, models.EntityContent, shared.ID, theirs.ID); err != nil {
		t.Fatalf("owner link: %v", err)
	}
	if err := st.UnlinkTag(ctx, ownerA, models.EntityContent, shared.ID, theirs.ID); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	tags, err := st.ListEntityTags(ctx, ownerB, models.EntityContent, shared.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("expected link to survive a foreign unlink, got %+v", tags)
	}
}

func TestSessions(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	got, err := st.GetSessionByDate(ctx, ownerA, "2024-03-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatal("expected no session")
	}

	session := &models.Session{OwnerID: ownerA, SessionDate: "2024-03-01"}
	if err := st.InsertSession(ctx, session); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := st.InsertSession(ctx, &models.Session{OwnerID: ownerA, SessionDate: "2024-03-01"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	topic := mustTopic(t, st, ownerA, 1, "Scales")
	first := mustGoal(t, st, topic, "1.1", "")
	second := mustGoal(t, st, topic, "1.2", "")

	if err := st.InsertSessionGoal(ctx, session.ID, second.ID); err != nil {
		t.Fatalf("add second: %v", err)
	}
	if err := st.InsertSessionGoal(ctx, session.ID, first.ID); err != nil {
		t.Fatalf("add first: %v", err)
	}
	if err := st.InsertSessionGoal(ctx, session.ID, first.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	otherTopic := mustTopic(t, st, ownerB, 1, "Other")
	otherGoal := mustGoal(t, st, otherTopic, "1.1", "")
	if err := st.InsertSessionGoal(ctx, session.ID, otherGoal.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign goal, got %v", err)
	}

	ids, err := st.ListSessionGoalIDs(ctx, session.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 || ids[0] != first.ID || ids[1] != second.ID {
		t.Fatalf("expected goals in number order, got %v", ids)
	}

	if err := st.DeleteSessionGoal(ctx, session.ID, first.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := st.ClearSessionGoals(ctx, session.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	ids, _ = st.ListSessionGoalIDs(ctx, session.ID)
	if len(ids) != 0 {
		t.Fatalf("expected empty session, got %v", ids)
	}
	if got, _ := st.GetSessionByDate(ctx, ownerA, "2024-03-01"); got == nil || got.ID != session.ID {
		t.Fatal("clear must keep the session row")
	}
}

func TestDailyLogCounts(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	topic := mustTopic(t, st, ownerA, 1, "Scales")
	goal := mustGoal(t, st, topic, "1.1", "")
	mustLog(t, st, goal, "2023-12-31")
	mustLog(t, st, goal, "2024-01-01")
	mustLog(t, st, goal, "2024-01-01")
	mustLog(t, st, goal, "2024-12-31")

	otherTopic := mustTopic(t, st, ownerB, 1, "Other")
	mustLog(t, st, mustGoal(t, st, otherTopic, "1.1", ""), "2024-01-01")

	counts, err := st.DailyLogCounts(ctx, ownerA, "2024-01-01", "2024-12-31")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	want := []models.DailyCount{{Date: "2024-01-01", Count: 2}, {Date: "2024-12-31", Count: 1}}
	if len(counts) != len(want) {
		t.Fatalf("expected %d days, got %+v", len(want), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("day %d: expected %+v, got %+v", i, want[i], counts[i])
		}
	}
}

func TestUsers(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	user, err := st.CreateUser(ctx, "  Alice ", "hash", now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected normalized username, got %q", user.Username)
	}
	if _, err := st.CreateUser(ctx, "alice", "hash", now); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	byName, err := st.GetUserByUsername(ctx, "ALICE")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if byName == nil || byName.ID != user.ID || byName.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", byName)
	}
	byID, _ := st.GetUserByID(ctx, user.ID)
	if byID == nil || byID.Username != "alice" {
		t.Fatalf("unexpected user by id: %+v", byID)
	}

	count, err := st.CountUsers(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}
