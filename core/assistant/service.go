package assistant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lakouedu/lakou/core"
)

var NowFunc = time.Now // mockable

const (
	featureName     = "ai_assistant"
	interactionUse  = "use"
	persistDeadline = 10 * time.Second
)

// Service runs the assistant request pipeline: preference gate, context
// build, intent classification, strategy dispatch (or hosted-completion
// fallback), response composition and detached persistence. It holds no
// per-request state and is safe for concurrent use.
type Service struct {
	conf      *core.Config
	repo      Repository
	completer Completer // nil disables the hosted-completion fallback
	logger    core.Logger
	handlers  map[Intent]strategyFunc

	wg sync.WaitGroup
}

func NewService(conf *core.Config, repo Repository, completer Completer, logger core.Logger) *Service {
	svc := &Service{
		conf:      conf,
		repo:      repo,
		completer: completer,
		logger:    logger,
	}
	svc.handlers = svc.strategies()
	return svc
}

// Chat handles one assistant request end to end.
//
// Only two conditions short-circuit: the feature-disabled gate (returned as
// FeatureDisabledError, not a failure) and an authenticated caller being a
// hard precondition of the HTTP layer. Everything downstream degrades
// rather than fails: context lookups, auxiliary procedures and the
// completion API all fall back to deterministic localized responses.
func (svc *Service) Chat(ctx context.Context, userID string, req ChatRequest) (ChatResponse, error) {
	// preference gate; runs before any context building or persistence
	prefs := Preferences{UserID: userID, AIEnabled: true}
	if p, err := svc.repo.GetPreferences(ctx, userID); err == nil {
		prefs = p
	} else if err != ErrNotFound {
		svc.logger.Warn(fmt.Sprintf("assistant: getting preferences for %s: %v", userID, err))
	}

	lang := ResolveLanguage(prefs.PreferredLanguage, req.Language, svc.conf.Assistant.DefaultLanguage)
	if !prefs.AIEnabled {
		return ChatResponse{}, &FeatureDisabledError{Language: lang}
	}

	// context is an enhancement, not a dependency: degrade to an empty
	// snapshot on lookup failure
	snapshot, err := svc.repo.GetUserContext(ctx, userID)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("assistant: getting user context for %s: %v", userID, err))
		snapshot = ContextSnapshot{UserID: userID, UserRole: RoleStudent}
	}
	snapshot.UserRole = roleOrStudent(snapshot.UserRole)

	intent := ClassifyIntent(req.Message)
	response := svc.respond(ctx, intent, strategyInput{
		UserID:      userID,
		Message:     req.Message,
		FeatureType: req.FeatureType,
		Language:    lang,
		Snapshot:    snapshot,
		Prefs:       prefs,
	})

	resp := ChatResponse{
		Response:  response,
		SessionID: req.SessionID,
		Language:  lang,
		Context: ResponseContext{
			HasRecommendations: len(snapshot.RecentCourses) > 0,
			UserRole:           snapshot.UserRole,
			CanUseVoice:        prefs.VoiceEnabled,
		},
	}

	svc.persist(ConversationTurn{
		ID:        uuid.New().String(),
		UserID:    userID,
		SessionID: req.SessionID,
		Role:      "user",
		Message:   req.Message,
		Response:  response,
		Context:   snapshot,
		Language:  lang,
		CreatedAt: NowFunc().UTC(),
	})

	return resp, nil
}

func (svc *Service) respond(ctx context.Context, intent Intent, in strategyInput) string {
	if handler, ok := svc.handlers[intent]; ok {
		return handler(ctx, in)
	}

	// general intent: hosted completion for long messages, static
	// contextual fallback otherwise
	if svc.completer != nil && EligibleForCompletion(in.Message, svc.conf.Assistant.MinCompletionLen) {
		reply, err := svc.completer.Complete(ctx, BuildSystemPrompt(svc.conf.AppName, in.Language, in.Snapshot), in.Message)
		if err == nil && reply != "" {
			return reply
		}
		if err != nil {
			svc.logger.Warn(fmt.Sprintf("assistant: completion call: %v", err))
		}
	}
	return ContextualFallback(in.Snapshot.UserRole, in.Language)
}

// persist writes the conversation turn and the usage event on a detached
// goroutine with its own deadline and recover barrier. Failures are logged
// and never affect the already-composed response.
func (svc *Service) persist(turn ConversationTurn) {
	svc.wg.Add(1)
	go func() {
		defer svc.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				svc.logger.Error(fmt.Sprintf("assistant: persistence panic: %v", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), persistDeadline)
		defer cancel()

		if _, err := svc.repo.CreateConversationTurn(ctx, turn); err != nil {
			svc.logger.Error(fmt.Sprintf("assistant: saving conversation turn: %v", err))
		}
		err := svc.repo.TrackUsage(ctx, UsageEvent{
			UserID:          turn.UserID,
			FeatureName:     featureName,
			InteractionType: interactionUse,
			SessionID:       turn.SessionID,
			Metadata: map[string]interface{}{
				"messageLength":  len(turn.Message),
				"responseLength": len(turn.Response),
				"language":       turn.Language,
			},
		})
		if err != nil {
			svc.logger.Error(fmt.Sprintf("assistant: tracking usage: %v", err))
		}
	}()
}

// Drain blocks until all in-flight persistence writes have finished.
// Called on graceful shutdown, and by tests before asserting writes.
func (svc *Service) Drain() {
	svc.wg.Wait()
}
