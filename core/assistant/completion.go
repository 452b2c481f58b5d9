package assistant

import (
	"encoding/json"
	"fmt"
)

var languageInstructions = map[string]string{
	LangHaitian: "Respond in Haitian Creole (Kreyòl Ayisyen).",
	LangEnglish: "Respond in English.",
	LangFrench:  "Respond in French.",
}

// BuildSystemPrompt assembles the completion-API system prompt: platform
// identity, a language instruction for the target language and the
// serialized context snapshot, with explicit length and honesty constraints.
func BuildSystemPrompt(appName, lang string, snapshot ContextSnapshot) string {
	contextJSON, err := json.Marshal(snapshot)
	if err != nil {
		contextJSON = []byte("{}")
	}

	return fmt.Sprintf(
		"You are the assistant of %s, an education and community platform. %s\n"+
			"The user's recent platform activity: %s\n"+
			"Keep responses under 200 words. If you are not sure about something, "+
			"say so instead of making it up.",
		appName, langText(languageInstructions, lang), contextJSON,
	)
}
