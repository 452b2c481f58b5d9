package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ClassifyIntent(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		// personalization
		{"Can you personalize my experience?", IntentPersonalization},
		{"Mwen vle yon chemen aprantisaj", IntentPersonalization},
		{"Je veux un parcours d'apprentissage", IntentPersonalization},
		// recommendation
		{"What do you recommend?", IntentRecommendation},
		{"Ki sa ou ka sijere?", IntentRecommendation},
		{"Peux-tu me suggérer un contenu ?", IntentRecommendation},
		// analytics
		{"Show me my statistics", IntentAnalytics},
		{"Montre m statistik mwen yo", IntentAnalytics},
		{"Je veux un rapport de progrès", IntentAnalytics},
		// voice
		{"Can you enable voice?", IntentVoice},
		{"Mwen vle pale avè m ak vwa", IntentVoice},
		{"Active la voix", IntentVoice},
		// greeting
		{"Hello", IntentGreeting},
		{"bonjou", IntentGreeting},
		{"Bonjour", IntentGreeting},
		{"bonswa zanmi", IntentGreeting},
		// course
		{"Which course should I take next? I mean class", IntentCourse},
		{"Ki kou ki disponib?", IntentCourse},
		{"Quels cours sont disponibles ?", IntentCourse},
		// progress
		{"How am i doing so far?", IntentProgress},
		{"Ki pwogrè mwen?", IntentProgress},
		{"Quel est mon avancement ?", IntentProgress},
		// general
		{"xyz", IntentGeneral},
		{"Tell me something interesting regarding the platform", IntentGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.message), "message: %q", tt.message)
		})
	}
}

// ambiguous messages must resolve to the intent appearing earliest in the
// precedence list, not to any other matching set
func Test_ClassifyIntent_precedence(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"recommend courses based on my progress", IntentRecommendation},
		{"personalize my course recommendations", IntentPersonalization},
		{"statistics about my progress", IntentAnalytics},
		{"hello, how is my progress", IntentGreeting},
		{"use voice to read my progress report", IntentAnalytics},
		{"recommend a learning path", IntentPersonalization},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.message), "message: %q", tt.message)
		})
	}
}

// the precedence list itself is a contract; reordering it changes behavior
func Test_intentPrecedence_order(t *testing.T) {
	want := []Intent{
		IntentPersonalization,
		IntentRecommendation,
		IntentAnalytics,
		IntentVoice,
		IntentGreeting,
		IntentCourse,
		IntentProgress,
	}
	got := make([]Intent, 0, len(intentPrecedence))
	for _, set := range intentPrecedence {
		assert.NotEmpty(t, set.keywords, "intent %s has no keywords", set.intent)
		got = append(got, set.intent)
	}
	assert.Equal(t, want, got)
}

func Test_EligibleForCompletion(t *testing.T) {
	assert.False(t, EligibleForCompletion("", 0))
	assert.False(t, EligibleForCompletion("12345678901234567890", 0))        // exactly 20
	assert.True(t, EligibleForCompletion("123456789012345678901", 0))        // 21
	assert.True(t, EligibleForCompletion("a realistically long message", 0)) // > 20

	// length is counted in runes: 20 accented characters stay below the
	// threshold even though they take more than 20 bytes
	accented := "èèèèèèèèèèèèèèèèèèèè"
	assert.Equal(t, 20, len([]rune(accented)))
	assert.Greater(t, len(accented), 20)
	assert.False(t, EligibleForCompletion(accented, 0))
	assert.True(t, EligibleForCompletion(accented+"è", 0))

	// configured threshold overrides the default
	assert.True(t, EligibleForCompletion("12345678901", 10))
	assert.False(t, EligibleForCompletion("12345678901", 15))
}
