package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lakouedu/lakou/core"
)

// Languages supported by the assistant. Every conversation turn is tagged
// with exactly one of these; language resolution falls back to Haitian Creole.
const (
	LangHaitian = "ht"
	LangEnglish = "en"
	LangFrench  = "fr"
)

var SupportedLanguages = []string{LangHaitian, LangEnglish, LangFrench}

func IsSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleSme     = "sme"
	RoleAdmin   = "admin"
)

var (
	// errors
	ErrNotFound = errors.New("record not found")
)

// FeatureDisabledError is returned by the preference gate when the caller
// has switched the assistant off. It is a terminal, non-failure condition.
type FeatureDisabledError struct {
	Language string
}

func (err FeatureDisabledError) Error() string {
	return "assistant disabled for user"
}

// Message returns the localized "assistant disabled" notice.
func (err FeatureDisabledError) Message() string {
	return disabledNotice(err.Language)
}

type (
	// Preferences is the externally owned ai_user_preferences row; read-only here.
	Preferences struct {
		UserID            string `json:"user_id"`
		AIEnabled         bool   `json:"ai_enabled"`
		PreferredLanguage string `json:"preferred_language"`
		VoiceEnabled      bool   `json:"voice_enabled"`
	}

	CourseActivity struct {
		Title          string  `json:"title"`
		Progress       float64 `json:"progress"`
		CompletionRate float64 `json:"completionRate"`
	}

	EventActivity struct {
		Title    string    `json:"title"`
		StartsAt time.Time `json:"startsAt"`
	}

	GroupMembership struct {
		Name string `json:"name"`
	}

	// ContextSnapshot is the request-scoped aggregation of a user's recent
	// platform activity. Built fresh per request; never persisted on its own,
	// only embedded inside a ConversationTurn.
	ContextSnapshot struct {
		UserID        string            `json:"userId"`
		UserRole      string            `json:"userRole"`
		FullName      string            `json:"fullName"`
		RecentCourses []CourseActivity  `json:"recentCourses"`
		RecentEvents  []EventActivity   `json:"recentEvents"`
		UserGroups    []GroupMembership `json:"userGroups"`
	}

	// ConversationTurn is the append-only record of one assistant exchange.
	ConversationTurn struct {
		ID        string          `json:"id"`
		UserID    string          `json:"user_id"`
		SessionID string          `json:"session_id"`
		Role      string          `json:"role"` // always "user"
		Message   string          `json:"message"`
		Response  string          `json:"response"`
		Context   ContextSnapshot `json:"context"`
		Language  string          `json:"language"`
		CreatedAt time.Time       `json:"created_at"` // UTC
	}

	// Recommendation is externally generated; consumed, not owned.
	Recommendation struct {
		ContentTitle         string  `json:"content_title"`
		RelevanceScore       float64 `json:"relevance_score"` // [0,1]
		RecommendationReason string  `json:"recommendation_reason"`
	}

	LearningPathStep struct {
		Position int    `json:"position"`
		Title    string `json:"title"`
		Focus    string `json:"focus"`
	}

	TeacherInsights struct {
		ActiveStudents    int     `json:"active_students"`
		CourseCount       int     `json:"course_count"`
		AvgCompletionRate float64 `json:"avg_completion_rate"`
	}

	SmeGuidance struct {
		PublishedContent int    `json:"published_content"`
		PendingReviews   int    `json:"pending_reviews"`
		TopTopic         string `json:"top_topic"`
	}

	// UsageEvent is a best-effort, write-only analytics fact.
	UsageEvent struct {
		UserID          string                 `json:"user_id"`
		FeatureName     string                 `json:"feature_name"`
		InteractionType string                 `json:"interaction_type"`
		SessionID       string                 `json:"session_id"`
		Metadata        map[string]interface{} `json:"metadata"`
	}
)

// Repository is the narrow data-access contract the pipeline consumes.
// Everything behind it (row-level security, schemas, aggregation SQL) is an
// external collaborator.
type Repository interface {
	GetPreferences(ctx context.Context, userID string) (Preferences, error)
	GetUserContext(ctx context.Context, userID string) (ContextSnapshot, error)

	GenerateLearningPath(ctx context.Context, userID string) ([]LearningPathStep, error)
	GenerateContentRecommendations(ctx context.Context, userID, contentType string) ([]Recommendation, error)
	GetTeacherInsights(ctx context.Context, userID string) (TeacherInsights, error)
	GetSmeGuidance(ctx context.Context, userID string) (SmeGuidance, error)

	CreateConversationTurn(ctx context.Context, turn ConversationTurn) (ConversationTurn, error)
	TrackUsage(ctx context.Context, event UsageEvent) error
}

// Completer is any service that can produce a chat completion for a
// system+user message pair. Implementations must degrade with an error
// rather than block past their own timeout; callers never retry.
type Completer interface {
	Complete(ctx context.Context, system, message string) (string, error)
}

type (
	ChatRequest struct {
		Message     string `json:"message" validate:"required,max=2000"`
		SessionID   string `json:"sessionId" validate:"required,max=64"`
		Language    string `json:"language" validate:"omitempty,oneof=ht en fr"`
		FeatureType string `json:"featureType" validate:"omitempty,max=64"`
	}

	ResponseContext struct {
		HasRecommendations bool   `json:"hasRecommendations"`
		UserRole           string `json:"userRole"`
		CanUseVoice        bool   `json:"canUseVoice"`
	}

	ChatResponse struct {
		Response  string          `json:"response"`
		SessionID string          `json:"sessionId"`
		Language  string          `json:"language"`
		Context   ResponseContext `json:"context"`
	}
)

func (req *ChatRequest) Validate(validate *validator.Validate) error {
	req.Message = core.CleanString(req.Message)
	req.SessionID = core.CleanString(req.SessionID)
	req.Language = core.CleanString(req.Language, true /* lower */)
	req.FeatureType = core.CleanString(req.FeatureType, true /* lower */)
	return validate.Struct(req)
}

// ResolveLanguage applies the turn-language invariant: the caller's stored
// preference wins, then the request-supplied language, then the configured
// platform default. An unsupported default degrades to Haitian Creole so the
// resolved language always stays inside the closed set.
func ResolveLanguage(preferred, requested, deflt string) string {
	if IsSupportedLanguage(preferred) {
		return preferred
	}
	if IsSupportedLanguage(requested) {
		return requested
	}
	if IsSupportedLanguage(deflt) {
		return deflt
	}
	return LangHaitian
}
