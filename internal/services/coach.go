package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/aspira-app/aspira-backend/internal/logger"
	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
	"github.com/aspira-app/aspira-backend/internal/repos"
)

// CoachFallbackMessage is returned whenever the generation backend fails.
// Upstream errors are never surfaced to the end user.
const CoachFallbackMessage = "I'm sorry, I couldn't gather my thoughts just now. Please try again in a moment — your writing is safe."

const coachSystemPrompt = "You are a supportive writing coach inside a journaling app. " +
	"Respond with warmth, ask one reflective question, and keep answers under 150 words."

type CoachService interface {
	// Respond proxies the conversation to the completion backend. When an
	// entry id is given the entry's content is prepended as context.
	Respond(ctx context.Context, userID uuid.UUID, entryID *uuid.UUID, messages []ChatMessage) (string, error)
}

type coachService struct {
	log         *logger.Logger
	client      CompletionClient
	journalRepo repos.JournalEntryRepo
}

func NewCoachService(log *logger.Logger, client CompletionClient, journalRepo repos.JournalEntryRepo) CoachService {
	return &coachService{
		log:         log.With("service", "CoachService"),
		client:      client,
		journalRepo: journalRepo,
	}
}

func (s *coachService) Respond(ctx context.Context, userID uuid.UUID, entryID *uuid.UUID, messages []ChatMessage) (string, error) {
	if userID == uuid.Nil || len(messages) == 0 {
		return "", apperrors.ErrInvalidArgument
	}

	system := coachSystemPrompt
	if entryID != nil {
		entry, err := s.journalRepo.GetByIDAndUserID(ctx, nil, *entryID, userID)
		if err != nil {
			s.log.Warn("Failed to load journal entry for coach context", "error", err)
		} else if entry != nil {
			system += "\n\nThe user is writing about this journal entry:\n" + entry.Content
		}
	}

	if s.client == nil {
		s.log.Warn("No completion backend configured, substituting fallback", "user_id", userID)
		return CoachFallbackMessage, nil
	}

	reply, err := s.client.Complete(ctx, system, messages)
	if err != nil {
		s.log.Warn("Completion backend failed, substituting fallback", "user_id", userID, "error", err)
		return CoachFallbackMessage, nil
	}
	return reply, nil
}
