package app

import (
	"gorm.io/gorm"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/repos"
)

type Repos struct {
	User               repos.UserRepo
	UserToken          repos.UserTokenRepo
	Field              repos.FieldRepo
	Module             repos.ModuleRepo
	SubModule          repos.SubModuleRepo
	QuestTemplate      repos.QuestTemplateRepo
	Quest              repos.QuestRepo
	UserQuestProgress  repos.UserQuestProgressRepo
	UserFieldProgress  repos.UserFieldProgressRepo
	UserGlobalProgress repos.UserGlobalProgressRepo
	UserLevel          repos.UserLevelRepo
	UserSurveyResponse repos.UserSurveyResponseRepo
	Todo               repos.TodoRepo
	JournalEntry       repos.JournalEntryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:               repos.NewUserRepo(db, log),
		UserToken:          repos.NewUserTokenRepo(db, log),
		Field:              repos.NewFieldRepo(db, log),
		Module:             repos.NewModuleRepo(db, log),
		SubModule:          repos.NewSubModuleRepo(db, log),
		QuestTemplate:      repos.NewQuestTemplateRepo(db, log),
		Quest:              repos.NewQuestRepo(db, log),
		UserQuestProgress:  repos.NewUserQuestProgressRepo(db, log),
		UserFieldProgress:  repos.NewUserFieldProgressRepo(db, log),
		UserGlobalProgress: repos.NewUserGlobalProgressRepo(db, log),
		UserLevel:          repos.NewUserLevelRepo(db, log),
		UserSurveyResponse: repos.NewUserSurveyResponseRepo(db, log),
		Todo:               repos.NewTodoRepo(db, log),
		JournalEntry:       repos.NewJournalEntryRepo(db, log),
	}
}
