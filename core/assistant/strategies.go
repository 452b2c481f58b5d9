package assistant

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// strategyInput carries everything a response strategy may branch on.
type strategyInput struct {
	UserID      string
	Message     string
	FeatureType string
	Language    string
	Snapshot    ContextSnapshot
	Prefs       Preferences
}

// strategyFunc produces a localized response for one intent. Strategies
// recover from auxiliary data-store failures themselves; they never return
// an error and never propagate one to the composer.
type strategyFunc func(ctx context.Context, in strategyInput) string

// strategies maps every non-general intent to its handler. Built once in
// NewService; adding an intent without a handler falls through to the
// general path, which tests guard against.
func (svc *Service) strategies() map[Intent]strategyFunc {
	return map[Intent]strategyFunc{
		IntentPersonalization: svc.personalizationStrategy,
		IntentRecommendation:  svc.recommendationStrategy,
		IntentAnalytics:       svc.analyticsStrategy,
		IntentVoice:           svc.voiceStrategy,
		IntentGreeting:        svc.greetingStrategy,
		IntentCourse:          svc.courseStrategy,
		IntentProgress:        svc.progressStrategy,
	}
}

// roundPct rounds a 0-100 percentage to the nearest integer.
func roundPct(v float64) int {
	return int(math.Round(v))
}

func (svc *Service) personalizationStrategy(ctx context.Context, in strategyInput) string {
	steps, err := svc.repo.GenerateLearningPath(ctx, in.UserID)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("assistant: generating learning path: %v", err))
		return ErrorResponse(in.Language)
	}
	if len(steps) == 0 {
		return langText(personalizationEmpties, in.Language)
	}

	var b strings.Builder
	b.WriteString(langText(personalizationIntros, in.Language))
	for i, step := range steps {
		if i == 5 {
			break
		}
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, step.Title))
		if step.Focus != "" {
			b.WriteString(" — " + step.Focus)
		}
	}
	return b.String()
}

func (svc *Service) recommendationStrategy(ctx context.Context, in strategyInput) string {
	contentType := in.FeatureType
	if contentType == "" {
		contentType = "course"
	}

	recs, err := svc.repo.GenerateContentRecommendations(ctx, in.UserID, contentType)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("assistant: generating recommendations: %v", err))
		return ErrorResponse(in.Language)
	}
	if len(recs) == 0 {
		return langText(noRecommendations, in.Language)
	}

	var b strings.Builder
	b.WriteString(langText(recommendationIntros, in.Language))
	for i, rec := range recs {
		if i == 3 {
			break
		}
		b.WriteString("\n• " + rec.ContentTitle)
		if rec.RecommendationReason != "" {
			b.WriteString(" — " + rec.RecommendationReason)
		}
	}
	return b.String()
}

func (svc *Service) analyticsStrategy(ctx context.Context, in strategyInput) string {
	switch in.Snapshot.UserRole {
	case RoleTeacher:
		insights, err := svc.repo.GetTeacherInsights(ctx, in.UserID)
		if err != nil {
			svc.logger.Warn(fmt.Sprintf("assistant: getting teacher insights: %v", err))
			return ErrorResponse(in.Language)
		}
		return fmt.Sprintf(langText(teacherAnalytics, in.Language),
			insights.ActiveStudents, insights.CourseCount, roundPct(insights.AvgCompletionRate))

	case RoleSme:
		guidance, err := svc.repo.GetSmeGuidance(ctx, in.UserID)
		if err != nil {
			svc.logger.Warn(fmt.Sprintf("assistant: getting sme guidance: %v", err))
			return ErrorResponse(in.Language)
		}
		return fmt.Sprintf(langText(smeAnalytics, in.Language),
			guidance.PublishedContent, guidance.PendingReviews, guidance.TopTopic)

	default: // students and everyone else
		courses := in.Snapshot.RecentCourses
		if len(courses) == 0 {
			return langText(analyticsEmpties, in.Language)
		}
		return fmt.Sprintf(langText(studentAnalytics, in.Language),
			len(courses), roundPct(averageProgress(courses)))
	}
}

func (svc *Service) voiceStrategy(_ context.Context, in strategyInput) string {
	if in.Prefs.VoiceEnabled {
		return langText(voiceEnabledTexts, in.Language)
	}
	return langText(voiceDisabledTexts, in.Language)
}

func (svc *Service) greetingStrategy(_ context.Context, in strategyInput) string {
	return Greeting(roleOrStudent(in.Snapshot.UserRole), in.Language)
}

func (svc *Service) courseStrategy(_ context.Context, in strategyInput) string {
	courses := in.Snapshot.RecentCourses
	if len(courses) == 0 {
		return langText(courseEmpties, in.Language)
	}

	var b strings.Builder
	b.WriteString(langText(courseIntros, in.Language))
	for i, course := range courses {
		if i == 5 {
			break
		}
		b.WriteString(fmt.Sprintf("\n• %s (%d%%)", course.Title, roundPct(course.Progress)))
	}
	return b.String()
}

func (svc *Service) progressStrategy(_ context.Context, in strategyInput) string {
	courses := in.Snapshot.RecentCourses
	if len(courses) == 0 {
		return langText(progressEmpties, in.Language)
	}
	return fmt.Sprintf(langText(progressSummaries, in.Language),
		roundPct(averageProgress(courses)), len(courses))
}

func averageProgress(courses []CourseActivity) float64 {
	if len(courses) == 0 {
		return 0
	}
	var total float64
	for _, c := range courses {
		total += c.Progress
	}
	return total / float64(len(courses))
}

func roleOrStudent(role string) string {
	if role == "" {
		return RoleStudent
	}
	return role
}
