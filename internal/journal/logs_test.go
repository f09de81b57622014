package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"practicelog/internal/models"
)

type fanOutFixture struct {
	svc   *Service
	gw    *recordingGateway
	goal  *models.Goal
	r1    *models.Repertoire
	r2    *models.Repertoire
	other *models.Repertoire
}

func newFanOutFixture(t *testing.T) fanOutFixture {
	t.Helper()
	svc, gw, _ := testService(t)
	ctx := context.Background()

	r1, err := svc.CreateRepertoire(ctx, RepertoireInput{Title: "R1"})
	if err != nil {
		t.Fatalf("r1: %v", err)
	}
	r2, _ := svc.CreateRepertoire(ctx, RepertoireInput{Title: "R2"})
	other, _ := svc.CreateRepertoire(ctx, RepertoireInput{Title: "Other"})
	topic, _ := svc.CreateTopic(ctx, "Pieces")
	goal, err := svc.CreateGoal(ctx, topic.ID, "Learn R1", r1.ID)
	if err != nil {
		t.Fatalf("goal: %v", err)
	}
	gw.resetRecomputed()
	return fanOutFixture{svc: svc, gw: gw, goal: goal, r1: r1, r2: r2, other: other}
}

func TestCreateLogFanOut(t *testing.T) {
	f := newFanOutFixture(t)
	ctx := context.Background()
	video, _ := f.svc.CreateContent(ctx, ContentInput{Title: "Lesson", Type: "video"})

	res, err := f.svc.CreateLog(ctx, LogInput{
		GoalID:        f.goal.ID,
		Entry:         "hands separately",
		Date:          "2024-03-09",
		ContentIDs:    []string{video.ID},
		RepertoireIDs: []string{f.r2.ID, f.r2.ID},
	})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	if !res.StatsUpdated || res.Partial() {
		t.Fatalf("expected clean stats update, got %+v", res.WriteResult)
	}
	sameIDs(t, f.gw.recomputedIDs(), f.r1.ID, f.r2.ID)

	r2, _ := f.svc.GetRepertoire(ctx, f.r2.ID)
	if r2.PracticeCount != 1 || r2.LastPracticed != "2024-03-09" {
		t.Fatalf("unexpected r2 stats: %+v", r2)
	}
	r1, _ := f.svc.GetRepertoire(ctx, f.r1.ID)
	if r1.PracticeCount != 1 {
		t.Fatalf("expected r1 to count the goal's log, got %+v", r1)
	}
}

func TestCreateLogWithoutRepertoire(t *testing.T) {
	svc, gw, _ := testService(t)
	ctx := context.Background()
	topic, _ := svc.CreateTopic(ctx, "Scales")
	goal, _ := svc.CreateGoal(ctx, topic.ID, "Major", "")

	res, err := svc.CreateLog(ctx, LogInput{GoalID: goal.ID, Entry: "slow"})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	if res.StatsUpdated {
		t.Fatal("no repertoire touched, expected no stats update")
	}
	if res.Log.Date != "2024-03-10" {
		t.Fatalf("expected empty date to default to today, got %q", res.Log.Date)
	}
	if len(gw.recomputedIDs()) != 0 {
		t.Fatalf("unexpected recompute calls: %v", gw.recomputedIDs())
	}
}

func TestCreateLogPartialFailure(t *testing.T) {
	f := newFanOutFixture(t)
	ctx := context.Background()
	f.gw.recomputeErr = errors.New("backend down")

	res, err := f.svc.CreateLog(ctx, LogInput{
		GoalID:        f.goal.ID,
		Entry:         "played through",
		Date:          "2024-03-09",
		RepertoireIDs: []string{"missing"},
	})
	if err != nil {
		t.Fatalf("secondary failures must not fail the call: %v", err)
	}
	if res.Log == nil || res.Log.ID == "" {
		t.Fatal("expected the log to be created")
	}
	if !res.Partial() || res.StatsUpdated {
		t.Fatalf("expected partial result without stats update, got %+v", res.WriteResult)
	}

	steps := map[string]int{}
	for _, failure := range res.Failures {
		steps[failure.Step]++
	}
	if steps[StepLinkRepertoire] != 1 || steps[StepRecomputeStats] != 1 {
		t.Fatalf("unexpected failures: %+v", res.Failures)
	}
	sameIDs(t, f.gw.recomputedIDs(), f.r1.ID)

	stored, err := f.svc.GetLog(ctx, res.Log.ID)
	if err != nil || stored == nil {
		t.Fatalf("log should survive secondary failures: %v", err)
	}
}

func TestDeleteLogFanOutCoverage(t *testing.T) {
	f := newFanOutFixture(t)
	ctx := context.Background()

	res, err := f.svc.CreateLog(ctx, LogInput{GoalID: f.goal.ID, Entry: "x", Date: "2024-03-01", RepertoireIDs: []string{f.r2.ID}})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	f.gw.resetRecomputed()

	del, err := f.svc.DeleteLog(ctx, res.Log.ID)
	if err != nil {
		t.Fatalf("delete log: %v", err)
	}
	if !del.StatsUpdated {
		t.Fatal("expected stats update")
	}
	sameIDs(t, f.gw.recomputedIDs(), f.r1.ID, f.r2.ID)

	r2, _ := f.svc.GetRepertoire(ctx, f.r2.ID)
	if r2.PracticeCount != 0 || r2.LastPracticed != "" {
		t.Fatalf("expected r2 stats to reset, got %+v", r2)
	}
	if _, err := f.svc.GetLog(ctx, res.Log.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestUpdateLogDoesNotRecompute(t *testing.T) {
	f := newFanOutFixture(t)
	ctx := context.Background()
	res, _ := f.svc.CreateLog(ctx, LogInput{GoalID: f.goal.ID, Entry: "x", Date: "2024-03-01"})
	f.gw.resetRecomputed()

	log, err := f.svc.UpdateLog(ctx, res.Log.ID, "  revised  ")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if log.Entry != "revised" || log.Date != "2024-03-01" {
		t.Fatalf("unexpected log: %+v", log)
	}
	if len(f.gw.recomputedIDs()) != 0 {
		t.Fatalf("text edit must not recompute, got %v", f.gw.recomputedIDs())
	}
}

func TestDeleteGoalRecomputesAffectedSet(t *testing.T) {
	f := newFanOutFixture(t)
	ctx := context.Background()
	if _, err := f.svc.CreateLog(ctx, LogInput{GoalID: f.goal.ID, Entry: "x", Date: "2024-03-01", RepertoireIDs: []string{f.r2.ID}}); err != nil {
		t.Fatalf("create log: %v", err)
	}
	f.gw.resetRecomputed()

	res, err := f.svc.DeleteGoal(ctx, f.goal.ID)
	if err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	if !res.StatsUpdated {
		t.Fatal("expected stats update")
	}
	sameIDs(t, f.gw.recomputedIDs(), f.r1.ID, f.r2.ID)

	r1, _ := f.svc.GetRepertoire(ctx, f.r1.ID)
	r2, _ := f.svc.GetRepertoire(ctx, f.r2.ID)
	if r1.PracticeCount != 0 || r2.PracticeCount != 0 {
		t.Fatalf("expected stats to reset, got r1=%d r2=%d", r1.PracticeCount, r2.PracticeCount)
	}
}

func TestDeleteGoalWithoutRepertoire(t *testing.T) {
	svc, gw, _ := testService(t)
	ctx := context.Background()
	topic, _ := svc.CreateTopic(ctx, "Scales")
	goal, _ := svc.CreateGoal(ctx, topic.ID, "Major", "")

	res, err := svc.DeleteGoal(ctx, goal.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if res.StatsUpdated || len(gw.recomputedIDs()) != 0 {
		t.Fatalf("expected no recompute, got %+v", res)
	}
}

func TestSetGoalRepertoireRecomputesOldAndNew(t *testing.T) {
	f := newFanOutFixture(t)
	ctx := context.Background()
	if _, err := f.svc.CreateLog(ctx, LogInput{GoalID: f.goal.ID, Entry: "x", Date: "2024-03-01"}); err != nil {
		t.Fatalf("create log: %v", err)
	}
	f.gw.resetRecomputed()

	res, err := f.svc.SetGoalRepertoire(ctx, f.goal.ID, f.other.ID)
	if err != nil {
		t.Fatalf("set repertoire: %v", err)
	}
	if !res.StatsUpdated {
		t.Fatal("expected stats update")
	}
	sameIDs(t, f.gw.recomputedIDs(), f.r1.ID, f.other.ID)

	r1, _ := f.svc.GetRepertoire(ctx, f.r1.ID)
	moved, _ := f.svc.GetRepertoire(ctx, f.other.ID)
	if r1.PracticeCount != 0 || moved.PracticeCount != 1 {
		t.Fatalf("expected counts to move, got r1=%d other=%d", r1.PracticeCount, moved.PracticeCount)
	}

	f.gw.resetRecomputed()
	if _, err := f.svc.SetGoalRepertoire(ctx, f.goal.ID, ""); err != nil {
		t.Fatalf("clear repertoire: %v", err)
	}
	sameIDs(t, f.gw.recomputedIDs(), f.other.ID)

	if _, err := f.svc.SetGoalRepertoire(ctx, f.goal.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTopicRecomputesAffectedSet(t *testing.T) {
	f := newFanOutFixture(t)
	ctx := context.Background()
	if _, err := f.svc.CreateLog(ctx, LogInput{GoalID: f.goal.ID, Entry: "x", Date: "2024-03-01", RepertoireIDs: []string{f.r2.ID}}); err != nil {
		t.Fatalf("create log: %v", err)
	}
	f.gw.resetRecomputed()

	res, err := f.svc.DeleteTopic(ctx, f.goal.TopicID)
	if err != nil {
		t.Fatalf("delete topic: %v", err)
	}
	if !res.StatsUpdated {
		t.Fatal("expected stats update")
	}
	sameIDs(t, f.gw.recomputedIDs(), f.r1.ID, f.r2.ID)
}

func TestSetGoalComplete(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()
	topic, _ := svc.CreateTopic(ctx, "Scales")
	goal, _ := svc.CreateGoal(ctx, topic.ID, "Major", "")

	done, err := svc.SetGoalComplete(ctx, goal.ID, true)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.IsComplete || done.DateCompleted != "2024-03-10" {
		t.Fatalf("unexpected goal: %+v", done)
	}

	undone, err := svc.SetGoalComplete(ctx, goal.ID, false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if undone.IsComplete || undone.DateCompleted != "" {
		t.Fatalf("unexpected goal: %+v", undone)
	}
}

func TestSetGoalCompleteKeepsOriginalDate(t *testing.T) {
	svc, gw, _ := testService(t)
	ctx := context.Background()
	topic, _ := svc.CreateTopic(ctx, "Arpeggios")
	goal, _ := svc.CreateGoal(ctx, topic.ID, "Diminished", "")

	if _, err := svc.SetGoalComplete(ctx, goal.ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}

	later := time.Date(2024, time.April, 2, 12, 0, 0, 0, time.UTC)
	laterSvc := New(gw, StaticIdentity(testOwner), WithClock(func() time.Time { return later }))
	again, err := laterSvc.SetGoalComplete(ctx, goal.ID, true)
	if err != nil {
		t.Fatalf("complete again: %v", err)
	}
	if !again.IsComplete || again.DateCompleted != "2024-03-10" {
		t.Fatalf("expected original completion date kept, got %+v", again)
	}

	if _, err := laterSvc.SetGoalComplete(ctx, goal.ID, false); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	reopened, err := laterSvc.SetGoalComplete(ctx, goal.ID, true)
	if err != nil {
		t.Fatalf("complete after reopen: %v", err)
	}
	if reopened.DateCompleted != "2024-04-02" {
		t.Fatalf("expected a fresh completion date after reopening, got %q", reopened.DateCompleted)
	}
}

func TestSetGoalCompleteUnknownGoal(t *testing.T) {
	svc, _, _ := testService(t)
	if _, err := svc.SetGoalComplete(context.Background(), "missing", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
