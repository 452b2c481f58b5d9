package assistant

import (
	"strings"
	"unicode/utf8"
)

// Intent is the classified purpose of an inbound message, drawn from a
// closed set. The zero value is IntentGeneral.
type Intent int

const (
	IntentGeneral Intent = iota
	IntentPersonalization
	IntentRecommendation
	IntentAnalytics
	IntentVoice
	IntentGreeting
	IntentCourse
	IntentProgress
)

func (i Intent) String() string {
	switch i {
	case IntentPersonalization:
		return "personalization"
	case IntentRecommendation:
		return "recommendation"
	case IntentAnalytics:
		return "analytics"
	case IntentVoice:
		return "voice"
	case IntentGreeting:
		return "greeting"
	case IntentCourse:
		return "course"
	case IntentProgress:
		return "progress"
	}
	return "general"
}

type keywordSet struct {
	intent   Intent
	keywords []string
}

// intentPrecedence is the fixed match order. Earlier entries win over later
// ones for ambiguous messages ("recommend courses based on my progress"
// resolves to recommendation, never progress). Reordering this list is a
// behavioral change; tests assert the order itself.
var intentPrecedence = []keywordSet{
	{IntentPersonalization, []string{
		"personalize", "pèsonalize", "personnaliser", "personalise",
		"learning path", "chemen aprantisaj", "parcours d'apprentissage", "parcours",
		"adapte pou mwen", "adapter pour moi", "for me specifically",
	}},
	{IntentRecommendation, []string{
		"recommend", "rekòmande", "recommander", "rekomande",
		"suggest", "sijere", "suggérer", "sijesyon", "suggestion",
		"what should i", "kisa m ta dwe", "que devrais-je",
	}},
	{IntentAnalytics, []string{
		"analytics", "analitik", "analytique",
		"statistics", "statistik", "statistiques", "stats",
		"progress report", "rapò pwogrè", "rapport de progrès",
		"performance", "pèfòmans",
	}},
	{IntentVoice, []string{
		"voice", "vwa", "voix",
		"speak", "pale avè m", "parler",
		"read aloud", "li fò", "lire à voix haute",
	}},
	{IntentGreeting, []string{
		"hello", "hi there", "hey",
		"bonjou", "bonswa", "alo",
		"bonjour", "bonsoir", "salut",
		"good morning", "good evening",
	}},
	{IntentCourse, []string{
		"course", "kou", "cours",
		"class", "klas", "classe",
		"lesson", "leson", "leçon",
		"enroll", "enskri", "inscrire",
	}},
	{IntentProgress, []string{
		"progress", "pwogrè", "progrès",
		"avansman", "avancement",
		"how am i doing", "kòman m ap fè", "comment je m'en sors",
		"completed", "fini", "terminé",
	}},
}

// defaultMinCompletionLen is the message length above which an unmatched
// message becomes eligible for the hosted-completion fallback, unless
// overridden through config.
const defaultMinCompletionLen = 20

// ClassifyIntent assigns a message to an intent by testing the keyword sets
// in their fixed precedence order, short-circuiting on first match.
func ClassifyIntent(message string) Intent {
	msg := strings.ToLower(message)
	for _, set := range intentPrecedence {
		for _, kw := range set.keywords {
			if strings.Contains(msg, kw) {
				return set.intent
			}
		}
	}
	return IntentGeneral
}

// EligibleForCompletion reports whether an unmatched message is long enough
// to be worth a hosted-completion call. Length is counted in runes so
// accented Kreyòl and French text is measured like any other; a non-positive
// minLen falls back to the default threshold.
func EligibleForCompletion(message string, minLen int) bool {
	if minLen <= 0 {
		minLen = defaultMinCompletionLen
	}
	return utf8.RuneCountInString(message) > minLen
}
