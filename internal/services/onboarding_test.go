package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/aspira-app/aspira-backend/internal/gamedata"
	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
	"github.com/aspira-app/aspira-backend/internal/types"
)

func newOnboardingService(e *testEnv) OnboardingService {
	return NewOnboardingService(
		e.db, e.log,
		e.fieldRepo, e.fieldProgRepo, e.globalRepo,
		e.surveyRepo, e.userLevelRepo,
	)
}

func TestScoreToLevel(t *testing.T) {
	cases := []struct {
		name   string
		scores []SkillScore
		want   int
	}{
		{name: "empty survey", scores: nil, want: 1},
		{name: "all zero", scores: []SkillScore{{Skill: "focus", Score: 0}}, want: 1},
		{name: "boundary 20", scores: []SkillScore{{Skill: "focus", Score: 20}}, want: 1},
		{name: "boundary 21", scores: []SkillScore{{Skill: "focus", Score: 21}}, want: 2},
		{name: "average 55", scores: []SkillScore{{Skill: "a", Score: 50}, {Skill: "b", Score: 60}}, want: 3},
		{name: "boundary 80", scores: []SkillScore{{Skill: "focus", Score: 80}}, want: 4},
		{name: "max", scores: []SkillScore{{Skill: "focus", Score: 100}}, want: 5},
		{name: "out of range clamps", scores: []SkillScore{{Skill: "focus", Score: 400}}, want: 5},
		{name: "negative clamps", scores: []SkillScore{{Skill: "focus", Score: -30}}, want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScoreToLevel(tc.scores); got != tc.want {
				t.Fatalf("level: want=%d got=%d", tc.want, got)
			}
		})
	}
}

func TestOnboardingComplete(t *testing.T) {
	e := newTestEnv(t)
	svc := newOnboardingService(e)
	user := e.seedUser(t)
	chosen := e.seedField(t, "Mindfulness")
	other := e.seedField(t, "Fitness")

	scores := []SkillScore{{Skill: "focus", Score: 50}, {Skill: "calm", Score: 60}}
	progress, err := svc.Complete(context.Background(), user.ID, chosen.ID, scores)
	if err != nil {
		t.Fatalf("complete onboarding: %v", err)
	}
	if !progress.Unlocked || progress.Level != 3 {
		t.Fatalf("chosen field should be unlocked at level 3: %+v", progress)
	}

	otherProg, err := e.fieldProgRepo.GetByUserAndFieldID(context.Background(), nil, user.ID, other.ID)
	if err != nil {
		t.Fatalf("fetch other progress: %v", err)
	}
	if otherProg == nil || otherProg.Unlocked || otherProg.Level != 1 || otherProg.XP != 0 {
		t.Fatalf("other fields start locked at level 1: %+v", otherProg)
	}

	global, err := e.globalRepo.GetByUserID(context.Background(), nil, user.ID)
	if err != nil {
		t.Fatalf("fetch global: %v", err)
	}
	if global == nil || global.League != types.LeagueBronze || global.GlobalLevel != 1 {
		t.Fatalf("global progress should start in bronze at level 1: %+v", global)
	}

	survey, err := e.surveyRepo.GetByUserAndFieldID(context.Background(), nil, user.ID, chosen.ID)
	if err != nil {
		t.Fatalf("fetch survey: %v", err)
	}
	if len(survey) != 2 {
		t.Fatalf("want 2 survey rows, got %d", len(survey))
	}
}

func TestOnboardingCompleteIsRepeatable(t *testing.T) {
	e := newTestEnv(t)
	svc := newOnboardingService(e)
	user := e.seedUser(t)
	field := e.seedField(t, "Art")

	if _, err := svc.Complete(context.Background(), user.ID, field.ID, []SkillScore{{Skill: "drawing", Score: 10}}); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	// Accrue some XP, then redo the survey with higher scores.
	if err := e.fieldProgRepo.AddXP(context.Background(), nil, user.ID, field.ID, 40); err != nil {
		t.Fatalf("add xp: %v", err)
	}
	progress, err := svc.Complete(context.Background(), user.ID, field.ID, []SkillScore{{Skill: "drawing", Score: 90}})
	if err != nil {
		t.Fatalf("second completion: %v", err)
	}
	if progress.Level != 5 {
		t.Fatalf("re-survey should reset the level: want=5 got=%d", progress.Level)
	}
	if progress.XP != 40 {
		t.Fatalf("re-survey must keep accrued xp: want=40 got=%d", progress.XP)
	}
}

func TestOnboardingCompleteUnknownField(t *testing.T) {
	e := newTestEnv(t)
	svc := newOnboardingService(e)
	user := e.seedUser(t)

	_, err := svc.Complete(context.Background(), user.ID, uuid.New(), nil)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSeedLevels(t *testing.T) {
	e := newTestEnv(t)
	svc := newOnboardingService(e)

	data := gamedata.GameData{Levels: []gamedata.LevelThreshold{
		{Level: 1, XPThreshold: 100},
		{Level: 2, XPThreshold: 250},
	}}
	if err := svc.SeedLevels(context.Background(), data); err != nil {
		t.Fatalf("seed levels: %v", err)
	}
	row, err := e.userLevelRepo.GetByLevel(context.Background(), nil, 2)
	if err != nil {
		t.Fatalf("fetch level: %v", err)
	}
	if row == nil || row.XPThreshold != 250 {
		t.Fatalf("level 2 threshold: %+v", row)
	}

	// Re-seeding with new numbers overwrites.
	data.Levels[1].XPThreshold = 300
	if err := svc.SeedLevels(context.Background(), data); err != nil {
		t.Fatalf("re-seed levels: %v", err)
	}
	row, err = e.userLevelRepo.GetByLevel(context.Background(), nil, 2)
	if err != nil {
		t.Fatalf("fetch level after re-seed: %v", err)
	}
	if row.XPThreshold != 300 {
		t.Fatalf("re-seed should upsert: want=300 got=%d", row.XPThreshold)
	}
}
