package dummydb

import (
	"context"

	"github.com/lakouedu/lakou/core/assistant"
)

// AssistantRepository is the in-mem assistant.Repository used by tests.
// The *Err fields force the corresponding operation to fail.
type AssistantRepository struct {
	db *assistantTable

	PreferencesErr     error
	ContextErr         error
	PathErr            error
	RecommendationsErr error
	InsightsErr        error
	GuidanceErr        error
	TurnErr            error
	UsageErr           error
}

var _ assistant.Repository = (*AssistantRepository)(nil) // interface compliance check

func NewAssistantRepository(db *DB) *AssistantRepository {
	return &AssistantRepository{db: db.assistant}
}

// Seed helpers

func (repo *AssistantRepository) SetPreferences(prefs assistant.Preferences) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.prefs[prefs.UserID] = prefs
}

func (repo *AssistantRepository) SetUserContext(snapshot assistant.ContextSnapshot) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.contexts[snapshot.UserID] = snapshot
}

func (repo *AssistantRepository) SetLearningPath(userID string, steps ...assistant.LearningPathStep) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.paths[userID] = steps
}

func (repo *AssistantRepository) SetRecommendations(userID string, recs ...assistant.Recommendation) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.recommendations[userID] = recs
}

func (repo *AssistantRepository) SetTeacherInsights(userID string, insights assistant.TeacherInsights) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.teacherInsights[userID] = insights
}

func (repo *AssistantRepository) SetSmeGuidance(userID string, guidance assistant.SmeGuidance) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.smeGuidance[userID] = guidance
}

// Write inspection helpers

func (repo *AssistantRepository) Turns() []assistant.ConversationTurn {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append([]assistant.ConversationTurn(nil), repo.db.turns...)
}

func (repo *AssistantRepository) Events() []assistant.UsageEvent {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append([]assistant.UsageEvent(nil), repo.db.events...)
}

// assistant.Repository implementation

func (repo *AssistantRepository) GetPreferences(_ context.Context, userID string) (assistant.Preferences, error) {
	if repo.PreferencesErr != nil {
		return assistant.Preferences{}, repo.PreferencesErr
	}
	repo.db.RLock()
	defer repo.db.RUnlock()

	if prefs, ok := repo.db.prefs[userID]; ok {
		return prefs, nil
	}
	return assistant.Preferences{}, assistant.ErrNotFound
}

func (repo *AssistantRepository) GetUserContext(_ context.Context, userID string) (assistant.ContextSnapshot, error) {
	if repo.ContextErr != nil {
		return assistant.ContextSnapshot{}, repo.ContextErr
	}
	repo.db.RLock()
	defer repo.db.RUnlock()

	if snapshot, ok := repo.db.contexts[userID]; ok {
		return snapshot, nil
	}
	return assistant.ContextSnapshot{}, assistant.ErrNotFound
}

func (repo *AssistantRepository) GenerateLearningPath(_ context.Context, userID string) ([]assistant.LearningPathStep, error) {
	if repo.PathErr != nil {
		return nil, repo.PathErr
	}
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.paths[userID], nil
}

func (repo *AssistantRepository) GenerateContentRecommendations(_ context.Context, userID, _ string) ([]assistant.Recommendation, error) {
	if repo.RecommendationsErr != nil {
		return nil, repo.RecommendationsErr
	}
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.recommendations[userID], nil
}

func (repo *AssistantRepository) GetTeacherInsights(_ context.Context, userID string) (assistant.TeacherInsights, error) {
	if repo.InsightsErr != nil {
		return assistant.TeacherInsights{}, repo.InsightsErr
	}
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.teacherInsights[userID], nil
}

func (repo *AssistantRepository) GetSmeGuidance(_ context.Context, userID string) (assistant.SmeGuidance, error) {
	if repo.GuidanceErr != nil {
		return assistant.SmeGuidance{}, repo.GuidanceErr
	}
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.smeGuidance[userID], nil
}

func (repo *AssistantRepository) CreateConversationTurn(_ context.Context, turn assistant.ConversationTurn) (assistant.ConversationTurn, error) {
	if repo.TurnErr != nil {
		return assistant.ConversationTurn{}, repo.TurnErr
	}
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.turns = append(repo.db.turns, turn)
	return turn, nil
}

func (repo *AssistantRepository) TrackUsage(_ context.Context, event assistant.UsageEvent) error {
	if repo.UsageErr != nil {
		return repo.UsageErr
	}
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.events = append(repo.db.events, event)
	return nil
}
