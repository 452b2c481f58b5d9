package pgrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lakouedu/lakou/core/assistant"
)

type assistantRepository struct {
	db *sqlx.DB
}

var _ assistant.Repository = (*assistantRepository)(nil) // interface compliance check

func NewAssistantRepository(db *sqlx.DB) *assistantRepository {
	return &assistantRepository{db: db}
}

type preferencesRow struct {
	UserID            string      `db:"user_id"`
	AIEnabled         null.Bool   `db:"ai_enabled"`
	PreferredLanguage null.String `db:"preferred_language"`
	VoiceEnabled      null.Bool   `db:"voice_enabled"`
}

func (repo assistantRepository) GetPreferences(ctx context.Context, userID string) (assistant.Preferences, error) {
	var row preferencesRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT user_id, ai_enabled, preferred_language, voice_enabled
		 FROM ai_user_preferences WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return assistant.Preferences{}, assistant.ErrNotFound
	}
	if err != nil {
		return assistant.Preferences{}, errors.Wrap(err, "getting preferences")
	}

	prefs := assistant.Preferences{
		UserID:            row.UserID,
		AIEnabled:         true,
		PreferredLanguage: row.PreferredLanguage.String,
		VoiceEnabled:      row.VoiceEnabled.Bool,
	}
	if row.AIEnabled.Valid {
		prefs.AIEnabled = row.AIEnabled.Bool
	}
	return prefs, nil
}

// GetUserContext invokes the aggregated context procedure; it returns the
// whole snapshot as one JSON document.
func (repo assistantRepository) GetUserContext(ctx context.Context, userID string) (assistant.ContextSnapshot, error) {
	var doc []byte
	err := repo.db.GetContext(ctx, &doc, `SELECT get_user_context($1)`, userID)
	if err == sql.ErrNoRows {
		return assistant.ContextSnapshot{}, assistant.ErrNotFound
	}
	if err != nil {
		return assistant.ContextSnapshot{}, errors.Wrap(err, "getting user context")
	}

	var snapshot assistant.ContextSnapshot
	if err = json.Unmarshal(doc, &snapshot); err != nil {
		return assistant.ContextSnapshot{}, errors.Wrap(err, "decoding user context")
	}
	snapshot.UserID = userID
	return snapshot, nil
}

type learningPathRow struct {
	Position int    `db:"position"`
	Title    string `db:"title"`
	Focus    string `db:"focus"`
}

func (repo assistantRepository) GenerateLearningPath(ctx context.Context, userID string) ([]assistant.LearningPathStep, error) {
	var rows []learningPathRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT position, title, focus FROM generate_learning_path($1) ORDER BY position`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "generating learning path")
	}

	steps := make([]assistant.LearningPathStep, 0, len(rows))
	for _, row := range rows {
		steps = append(steps, assistant.LearningPathStep{
			Position: row.Position,
			Title:    row.Title,
			Focus:    row.Focus,
		})
	}
	return steps, nil
}

type recommendationRow struct {
	ContentTitle         string      `db:"content_title"`
	RelevanceScore       float64     `db:"relevance_score"`
	RecommendationReason null.String `db:"recommendation_reason"`
}

func (repo assistantRepository) GenerateContentRecommendations(ctx context.Context, userID, contentType string) ([]assistant.Recommendation, error) {
	var rows []recommendationRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT content_title, relevance_score, recommendation_reason
		 FROM generate_content_recommendations($1, $2)
		 ORDER BY relevance_score DESC`, userID, contentType)
	if err != nil {
		return nil, errors.Wrap(err, "generating recommendations")
	}

	recs := make([]assistant.Recommendation, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, assistant.Recommendation{
			ContentTitle:         row.ContentTitle,
			RelevanceScore:       row.RelevanceScore,
			RecommendationReason: row.RecommendationReason.String,
		})
	}
	return recs, nil
}

func (repo assistantRepository) GetTeacherInsights(ctx context.Context, userID string) (assistant.TeacherInsights, error) {
	var insights assistant.TeacherInsights
	err := repo.db.QueryRowxContext(ctx,
		`SELECT active_students, course_count, avg_completion_rate FROM get_teacher_insights($1)`, userID,
	).Scan(&insights.ActiveStudents, &insights.CourseCount, &insights.AvgCompletionRate)
	if err != nil {
		return assistant.TeacherInsights{}, errors.Wrap(err, "getting teacher insights")
	}
	return insights, nil
}

func (repo assistantRepository) GetSmeGuidance(ctx context.Context, userID string) (assistant.SmeGuidance, error) {
	var guidance assistant.SmeGuidance
	var topTopic null.String
	err := repo.db.QueryRowxContext(ctx,
		`SELECT published_content, pending_reviews, top_topic FROM get_sme_guidance($1)`, userID,
	).Scan(&guidance.PublishedContent, &guidance.PendingReviews, &topTopic)
	if err != nil {
		return assistant.SmeGuidance{}, errors.Wrap(err, "getting sme guidance")
	}
	guidance.TopTopic = topTopic.String
	return guidance, nil
}

func (repo assistantRepository) CreateConversationTurn(ctx context.Context, turn assistant.ConversationTurn) (assistant.ConversationTurn, error) {
	snapshot, err := json.Marshal(turn.Context)
	if err != nil {
		return assistant.ConversationTurn{}, errors.Wrap(err, "encoding context snapshot")
	}

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO conversation_turns (id, user_id, session_id, role, message, response, context, language, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		turn.ID, turn.UserID, turn.SessionID, turn.Role, turn.Message, turn.Response, snapshot, turn.Language, turn.CreatedAt,
	)
	if err != nil {
		return assistant.ConversationTurn{}, errors.Wrap(err, "inserting conversation turn")
	}
	return turn, nil
}

func (repo assistantRepository) TrackUsage(ctx context.Context, event assistant.UsageEvent) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return errors.Wrap(err, "encoding usage metadata")
	}

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO usage_events (user_id, feature_name, interaction_type, session_id, metadata)
		 VALUES ($1, $2, $3, $4, $5)`,
		event.UserID, event.FeatureName, event.InteractionType, event.SessionID, metadata,
	)
	return errors.Wrap(err, "inserting usage event")
}
