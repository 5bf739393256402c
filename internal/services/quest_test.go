package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
	"github.com/aspira-app/aspira-backend/internal/types"
)

func newQuestService(e *testEnv) *questService {
	svc := NewQuestService(e.db, e.log, e.templateRepo, e.questRepo, e.questProgRepo, e.globalRepo)
	return svc.(*questService)
}

func TestRecordProgressClamping(t *testing.T) {
	e := newTestEnv(t)
	svc := newQuestService(e)
	user := e.seedUser(t)
	e.seedGlobalProgress(t, user.ID, types.LeagueBronze, 1, 0)
	template := e.seedTemplate(t, nil, "Read a chapter", false, 10)

	cases := []struct {
		name          string
		progress      int
		wantProgress  int
		wantCompleted bool
	}{
		{name: "negative clamps to zero", progress: -5, wantProgress: 0, wantCompleted: false},
		{name: "partial is kept", progress: 40, wantProgress: 40, wantCompleted: false},
		{name: "over 100 clamps and completes", progress: 150, wantProgress: 100, wantCompleted: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.RecordProgress(context.Background(), user.ID, template.ID, tc.progress); err != nil {
				t.Fatalf("record progress: %v", err)
			}
			row, err := e.questProgRepo.GetByUserAndQuestID(context.Background(), nil, user.ID, template.ID)
			if err != nil {
				t.Fatalf("fetch progress: %v", err)
			}
			if row.Progress != tc.wantProgress {
				t.Fatalf("progress: want=%d got=%d", tc.wantProgress, row.Progress)
			}
			if row.Completed != tc.wantCompleted {
				t.Fatalf("completed: want=%v got=%v", tc.wantCompleted, row.Completed)
			}
		})
	}
}

func TestRecordProgressAwardsXPExactlyOnce(t *testing.T) {
	e := newTestEnv(t)
	svc := newQuestService(e)
	user := e.seedUser(t)
	e.seedGlobalProgress(t, user.ID, types.LeagueBronze, 1, 100)
	template := e.seedTemplate(t, nil, "Meditate", false, 25)

	for i := 0; i < 3; i++ {
		if err := svc.RecordProgress(context.Background(), user.ID, template.ID, 100); err != nil {
			t.Fatalf("record progress (run %d): %v", i, err)
		}
	}

	global, err := e.globalRepo.GetByUserID(context.Background(), nil, user.ID)
	if err != nil {
		t.Fatalf("fetch global: %v", err)
	}
	if global.GlobalXP != 125 {
		t.Fatalf("xp awarded more than once: want=125 got=%d", global.GlobalXP)
	}
}

func TestRecordProgressKeepsCompletedAtOnReplay(t *testing.T) {
	e := newTestEnv(t)
	svc := newQuestService(e)
	user := e.seedUser(t)
	e.seedGlobalProgress(t, user.ID, types.LeagueBronze, 1, 0)
	template := e.seedTemplate(t, nil, "Journal", false, 5)

	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	if err := svc.RecordProgress(context.Background(), user.ID, template.ID, 100); err != nil {
		t.Fatalf("first completion: %v", err)
	}

	svc.now = func() time.Time { return first.Add(48 * time.Hour) }
	if err := svc.RecordProgress(context.Background(), user.ID, template.ID, 100); err != nil {
		t.Fatalf("replayed completion: %v", err)
	}

	row, err := e.questProgRepo.GetByUserAndQuestID(context.Background(), nil, user.ID, template.ID)
	if err != nil {
		t.Fatalf("fetch progress: %v", err)
	}
	if row.CompletedAt == nil || !row.CompletedAt.Equal(first) {
		t.Fatalf("completed_at must keep the original timestamp, got %v", row.CompletedAt)
	}
}

func TestRecordProgressLegacyQuestStatus(t *testing.T) {
	e := newTestEnv(t)
	svc := newQuestService(e)
	user := e.seedUser(t)
	e.seedGlobalProgress(t, user.ID, types.LeagueBronze, 1, 0)

	legacy := &types.Quest{
		UserID:   user.ID,
		Title:    "No sugar today",
		Type:     types.QuestTypePenalty,
		Status:   types.QuestStatusActive,
		XPReward: 15,
	}
	if _, err := e.questRepo.Create(context.Background(), nil, []*types.Quest{legacy}); err != nil {
		t.Fatalf("seed legacy quest: %v", err)
	}

	if err := svc.RecordProgress(context.Background(), user.ID, legacy.ID, 100); err != nil {
		t.Fatalf("record progress: %v", err)
	}

	updated, err := e.questRepo.GetByID(context.Background(), nil, legacy.ID)
	if err != nil {
		t.Fatalf("fetch quest: %v", err)
	}
	if updated.Status != types.QuestStatusCompleted {
		t.Fatalf("legacy status: want=%q got=%q", types.QuestStatusCompleted, updated.Status)
	}
	global, err := e.globalRepo.GetByUserID(context.Background(), nil, user.ID)
	if err != nil {
		t.Fatalf("fetch global: %v", err)
	}
	if global.GlobalXP != 15 {
		t.Fatalf("legacy reward: want=15 got=%d", global.GlobalXP)
	}
}

func TestRecordProgressUnknownQuest(t *testing.T) {
	e := newTestEnv(t)
	svc := newQuestService(e)
	user := e.seedUser(t)

	err := svc.RecordProgress(context.Background(), user.ID, uuid.New(), 50)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRecordProgressSurvivesMissingGlobalRow(t *testing.T) {
	e := newTestEnv(t)
	svc := newQuestService(e)
	user := e.seedUser(t)
	template := e.seedTemplate(t, nil, "Walk", false, 10)

	// No global progress row: the award fails internally but the progress
	// write must still land.
	if err := svc.RecordProgress(context.Background(), user.ID, template.ID, 100); err != nil {
		t.Fatalf("record progress: %v", err)
	}
	row, err := e.questProgRepo.GetByUserAndQuestID(context.Background(), nil, user.ID, template.ID)
	if err != nil {
		t.Fatalf("fetch progress: %v", err)
	}
	if !row.Completed {
		t.Fatalf("progress row should be completed despite failed award")
	}
}

func TestListActiveQuestsScoped(t *testing.T) {
	e := newTestEnv(t)
	svc := newQuestService(e)
	user := e.seedUser(t)
	field := e.seedField(t, "Health")
	module := e.seedModule(t, field.ID, "Habits", 1)
	sub := e.seedSubModule(t, module.ID, "Sleep", 0, 1)
	core := e.seedTemplate(t, &sub.ID, "Sleep 8 hours", true, 20)
	e.seedTemplate(t, nil, "Side quest", false, 5)

	list, err := svc.ListActiveQuests(context.Background(), user.ID, &sub.ID)
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	if len(list.DailyQuests) != 1 || list.DailyQuests[0].ID != core.ID {
		t.Fatalf("scoped list should hold only the sub-module's quests: %+v", list.DailyQuests)
	}
	if list.DailyQuests[0].Category != types.QuestCategoryCore {
		t.Fatalf("scoped template is core, got %q", list.DailyQuests[0].Category)
	}
	if len(list.PenaltyQuests) != 0 {
		t.Fatalf("scoped list has no penalty section: %+v", list.PenaltyQuests)
	}
}

func TestListActiveQuestsUnscoped(t *testing.T) {
	e := newTestEnv(t)
	svc := newQuestService(e)
	user := e.seedUser(t)
	side := e.seedTemplate(t, nil, "Drink water", false, 5)
	penalty := &types.Quest{
		UserID:   user.ID,
		Title:    "Missed workout",
		Type:     types.QuestTypePenalty,
		Status:   types.QuestStatusActive,
		XPReward: 0,
	}
	if _, err := e.questRepo.Create(context.Background(), nil, []*types.Quest{penalty}); err != nil {
		t.Fatalf("seed penalty: %v", err)
	}
	// Completed penalties stay out of the list.
	done := &types.Quest{
		UserID: user.ID,
		Title:  "Old penalty",
		Type:   types.QuestTypePenalty,
		Status: types.QuestStatusCompleted,
	}
	if _, err := e.questRepo.Create(context.Background(), nil, []*types.Quest{done}); err != nil {
		t.Fatalf("seed completed penalty: %v", err)
	}

	list, err := svc.ListActiveQuests(context.Background(), user.ID, nil)
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	if len(list.DailyQuests) != 1 || list.DailyQuests[0].ID != side.ID {
		t.Fatalf("unscoped daily list: %+v", list.DailyQuests)
	}
	if len(list.PenaltyQuests) != 1 || list.PenaltyQuests[0].ID != penalty.ID {
		t.Fatalf("penalty list: %+v", list.PenaltyQuests)
	}
}

func TestQuestStats(t *testing.T) {
	e := newTestEnv(t)
	svc := newQuestService(e)
	user := e.seedUser(t)
	e.seedGlobalProgress(t, user.ID, types.LeagueBronze, 1, 0)

	now := time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	yesterday := now.Add(-24 * time.Hour)
	today := now.Add(-2 * time.Hour)
	for _, completedAt := range []time.Time{yesterday, today} {
		at := completedAt
		if err := e.questProgRepo.Upsert(context.Background(), nil, &types.UserQuestProgress{
			UserID:      user.ID,
			QuestID:     uuid.New(),
			Progress:    100,
			Completed:   true,
			CompletedAt: &at,
		}); err != nil {
			t.Fatalf("seed completion: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TodayCompleted != 1 {
		t.Fatalf("today: want=1 got=%d", stats.TodayCompleted)
	}
	if stats.AllTimeCompleted != 2 {
		t.Fatalf("all time: want=2 got=%d", stats.AllTimeCompleted)
	}
	if stats.DailyTotal != dailyQuestTotal {
		t.Fatalf("daily total: want=%d got=%d", dailyQuestTotal, stats.DailyTotal)
	}
}
