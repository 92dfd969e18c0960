// Package analytics derives focus metrics from a participant's own
// messages: a keyword classifier, a time-window filter, and a score with
// a qualitative insight. Everything here is a pure function of its inputs.
package analytics

import "strings"

// Category labels a single message.
type Category string

const (
	Study       Category = "Study"
	Distraction Category = "Distraction"
)

// studyKeywords is the fixed vocabulary of academic subjects and
// study-related verbs. The rule is static; it does not learn from data.
var studyKeywords = []string{
	"study", "calculus", "math", "physics", "homework", "exam", "test",
	"read", "learn", "assignment", "project", "python", "code", "history",
	"chemistry", "biology", "algebra", "focus", "research",
}

// Classify labels content as Study when any keyword appears as a
// case-insensitive substring, Distraction otherwise. Any match wins, so
// keyword order is irrelevant.
func Classify(content string) Category {
	lower := strings.ToLower(content)
	for _, word := range studyKeywords {
		if strings.Contains(lower, word) {
			return Study
		}
	}
	return Distraction
}
