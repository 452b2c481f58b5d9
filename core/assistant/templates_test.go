package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allRoles = []string{RoleStudent, RoleTeacher, RoleSme, RoleAdmin}

func Test_Greeting_fallbackChain(t *testing.T) {
	// level 1: exact (role, language) hit for every pair
	for _, role := range allRoles {
		for _, lang := range SupportedLanguages {
			want, ok := greetings[role+"_greeting_"+lang]
			assert.True(t, ok, "missing greeting for %s/%s", role, lang)
			assert.Equal(t, want, Greeting(role, lang))
		}
	}

	// level 2: unknown language falls back to the role's English greeting
	assert.Equal(t, greetings["teacher_greeting_en"], Greeting(RoleTeacher, "zz"))

	// level 3: unknown role falls back to the English student greeting
	assert.Equal(t, greetings["student_greeting_en"], Greeting("guest", LangFrench))

	// level 4: never empty, whatever the input
	assert.NotEmpty(t, Greeting("", ""))
	assert.NotEmpty(t, Greeting("guest", "zz"))
}

func Test_localizedTables(t *testing.T) {
	langs := append([]string{"zz", ""}, SupportedLanguages...)

	for _, lang := range langs {
		assert.NotEmpty(t, ErrorResponse(lang), "error response for %q", lang)
		assert.NotEmpty(t, Apology(lang), "apology for %q", lang)
		assert.NotEmpty(t, disabledNotice(lang), "disabled notice for %q", lang)

		for _, role := range allRoles {
			assert.NotEmpty(t, ContextualFallback(role, lang), "fallback for %s/%q", role, lang)
		}
	}

	// unknown codes resolve to the English variants
	assert.Equal(t, errorResponses[LangEnglish], ErrorResponse("zz"))
	assert.Equal(t, contextualFallbacks[LangEnglish][RoleStudent], ContextualFallback(RoleStudent, "zz"))
	// unknown roles resolve to the student variant
	assert.Equal(t, contextualFallbacks[LangFrench][RoleStudent], ContextualFallback("guest", LangFrench))
}

func Test_ResolveLanguage(t *testing.T) {
	tests := []struct {
		name                        string
		preferred, requested, deflt string
		want                        string
	}{
		{"preference wins", LangFrench, LangEnglish, LangHaitian, LangFrench},
		{"request when no preference", "", LangEnglish, LangHaitian, LangEnglish},
		{"configured default when neither", "", "", LangEnglish, LangEnglish},
		{"empty default degrades to Haitian Creole", "", "", "", LangHaitian},
		{"invalid preference ignored", "es", LangFrench, LangHaitian, LangFrench},
		{"invalid everything degrades to Haitian Creole", "es", "de", "pt", LangHaitian},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLanguage(tt.preferred, tt.requested, tt.deflt))
		})
	}
}
