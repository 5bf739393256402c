package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/repos"
	"github.com/aspira-app/aspira-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

// testDB opens an in-memory sqlite database. A single connection keeps the
// concurrent path reads serialized against the shared memory store.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Field{},
		&types.Module{},
		&types.SubModule{},
		&types.QuestTemplate{},
		&types.Quest{},
		&types.UserQuestProgress{},
		&types.UserFieldProgress{},
		&types.UserGlobalProgress{},
		&types.UserLevel{},
		&types.UserSurveyResponse{},
		&types.Todo{},
		&types.JournalEntry{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

type testEnv struct {
	db  *gorm.DB
	log *logger.Logger

	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	fieldRepo     repos.FieldRepo
	moduleRepo    repos.ModuleRepo
	subModuleRepo repos.SubModuleRepo
	templateRepo  repos.QuestTemplateRepo
	questRepo     repos.QuestRepo
	questProgRepo repos.UserQuestProgressRepo
	fieldProgRepo repos.UserFieldProgressRepo
	globalRepo    repos.UserGlobalProgressRepo
	userLevelRepo repos.UserLevelRepo
	surveyRepo    repos.UserSurveyResponseRepo
	todoRepo      repos.TodoRepo
	journalRepo   repos.JournalEntryRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testDB(t)
	log := testLogger(t)
	return &testEnv{
		db:            db,
		log:           log,
		userRepo:      repos.NewUserRepo(db, log),
		userTokenRepo: repos.NewUserTokenRepo(db, log),
		fieldRepo:     repos.NewFieldRepo(db, log),
		moduleRepo:    repos.NewModuleRepo(db, log),
		subModuleRepo: repos.NewSubModuleRepo(db, log),
		templateRepo:  repos.NewQuestTemplateRepo(db, log),
		questRepo:     repos.NewQuestRepo(db, log),
		questProgRepo: repos.NewUserQuestProgressRepo(db, log),
		fieldProgRepo: repos.NewUserFieldProgressRepo(db, log),
		globalRepo:    repos.NewUserGlobalProgressRepo(db, log),
		userLevelRepo: repos.NewUserLevelRepo(db, log),
		surveyRepo:    repos.NewUserSurveyResponseRepo(db, log),
		todoRepo:      repos.NewTodoRepo(db, log),
		journalRepo:   repos.NewJournalEntryRepo(db, log),
	}
}

func (e *testEnv) seedUser(t *testing.T) *types.User {
	t.Helper()
	user := &types.User{
		Email:     uuid.NewString() + "@example.com",
		Password:  "hashed",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	if _, err := e.userRepo.Create(context.Background(), nil, []*types.User{user}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (e *testEnv) seedField(t *testing.T, name string) *types.Field {
	t.Helper()
	field := &types.Field{Name: name, UnlockThreshold: 1}
	if _, err := e.fieldRepo.Create(context.Background(), nil, []*types.Field{field}); err != nil {
		t.Fatalf("seed field: %v", err)
	}
	return field
}

func (e *testEnv) seedModule(t *testing.T, fieldID uuid.UUID, title string, unlockThreshold int) *types.Module {
	t.Helper()
	module := &types.Module{FieldID: fieldID, Title: title, UnlockThreshold: unlockThreshold}
	if _, err := e.moduleRepo.Create(context.Background(), nil, []*types.Module{module}); err != nil {
		t.Fatalf("seed module: %v", err)
	}
	return module
}

func (e *testEnv) seedSubModule(t *testing.T, moduleID uuid.UUID, title string, orderIndex, unlockThreshold int) *types.SubModule {
	t.Helper()
	sub := &types.SubModule{
		ModuleID:        moduleID,
		Title:           title,
		OrderIndex:      orderIndex,
		UnlockThreshold: unlockThreshold,
	}
	if _, err := e.subModuleRepo.Create(context.Background(), nil, []*types.SubModule{sub}); err != nil {
		t.Fatalf("seed sub-module: %v", err)
	}
	return sub
}

func (e *testEnv) seedTemplate(t *testing.T, subModuleID *uuid.UUID, title string, mandatory bool, xpReward int) *types.QuestTemplate {
	t.Helper()
	template := &types.QuestTemplate{
		SubModuleID: subModuleID,
		Title:       title,
		Difficulty:  "medium",
		Mandatory:   mandatory,
		XPReward:    xpReward,
	}
	if _, err := e.templateRepo.Create(context.Background(), nil, []*types.QuestTemplate{template}); err != nil {
		t.Fatalf("seed template: %v", err)
	}
	return template
}

func (e *testEnv) seedGlobalProgress(t *testing.T, userID uuid.UUID, league string, level, xp int) *types.UserGlobalProgress {
	t.Helper()
	row := &types.UserGlobalProgress{
		UserID:      userID,
		GlobalLevel: level,
		GlobalXP:    xp,
		League:      league,
	}
	if _, err := e.globalRepo.Create(context.Background(), nil, []*types.UserGlobalProgress{row}); err != nil {
		t.Fatalf("seed global progress: %v", err)
	}
	return row
}

func (e *testEnv) seedFieldProgress(t *testing.T, userID, fieldID uuid.UUID, level, xp int, unlocked bool) *types.UserFieldProgress {
	t.Helper()
	row := &types.UserFieldProgress{
		UserID:   userID,
		FieldID:  fieldID,
		Level:    level,
		XP:       xp,
		Unlocked: unlocked,
	}
	if _, err := e.fieldProgRepo.Create(context.Background(), nil, []*types.UserFieldProgress{row}); err != nil {
		t.Fatalf("seed field progress: %v", err)
	}
	return row
}

func (e *testEnv) seedLevels(t *testing.T, thresholds map[int]int) {
	t.Helper()
	rows := make([]*types.UserLevel, 0, len(thresholds))
	for level, xp := range thresholds {
		rows = append(rows, &types.UserLevel{Level: level, XPThreshold: xp})
	}
	if err := e.userLevelRepo.UpsertAll(context.Background(), nil, rows); err != nil {
		t.Fatalf("seed levels: %v", err)
	}
}
