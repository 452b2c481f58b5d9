package dummydb

import (
	"sync"

	"github.com/lakouedu/lakou/core/assistant"
)

type (
	DB struct {
		assistant *assistantTable
	}

	assistantTable struct {
		sync.RWMutex
		prefs           map[string]assistant.Preferences
		contexts        map[string]assistant.ContextSnapshot
		paths           map[string][]assistant.LearningPathStep
		recommendations map[string][]assistant.Recommendation
		teacherInsights map[string]assistant.TeacherInsights
		smeGuidance     map[string]assistant.SmeGuidance
		turns           []assistant.ConversationTurn
		events          []assistant.UsageEvent
	}
)

func Open() (*DB, error) {
	db := &DB{
		assistant: &assistantTable{
			prefs:           make(map[string]assistant.Preferences),
			contexts:        make(map[string]assistant.ContextSnapshot),
			paths:           make(map[string][]assistant.LearningPathStep),
			recommendations: make(map[string][]assistant.Recommendation),
			teacherInsights: make(map[string]assistant.TeacherInsights),
			smeGuidance:     make(map[string]assistant.SmeGuidance),
		},
	}
	return db, nil
}
