package analytics

import (
	"math"
	"time"

	"github.com/studyhall-labs/studybuddy/internal/message"
)

// Insight texts, keyed off exclusive focus-score thresholds.
const (
	insightExcellent  = "Excellent focus! Keep it up."
	insightModerate   = "Good study session, but try to minimize distractions."
	insightDistracted = "High distraction level detected. Suggest taking a break or using Focus Mode."
	insightNoData     = "No messages found for this period."
)

// Report is the analysis output: plain data, no markup, no persisted
// side effects.
type Report struct {
	FocusScore       int    `json:"focus_score"`
	StudyCount       int    `json:"study_count"`
	DistractionCount int    `json:"distraction_count"`
	Insight          string `json:"insights"`
}

// Analyze selects the messages authored by selfID that fall inside w
// relative to now, classifies each one, and scores the selection.
// It is a pure function of (log, selfID, w, now).
func Analyze(log []message.Message, selfID string, w Window, now time.Time) Report {
	var selected []message.Message
	for _, m := range log {
		if m.SenderID != selfID {
			continue
		}
		if !w.Contains(m.Timestamp, now) {
			continue
		}
		selected = append(selected, m)
	}

	if len(selected) == 0 {
		return Report{Insight: insightNoData}
	}

	var study, distraction int
	for _, m := range selected {
		if Classify(m.Content) == Study {
			study++
		} else {
			distraction++
		}
	}

	score := focusScore(study, distraction)
	return Report{
		FocusScore:       score,
		StudyCount:       study,
		DistractionCount: distraction,
		Insight:          insightFor(score),
	}
}

// focusScore is the percentage of selected messages classified as Study,
// rounded to the nearest integer. Zero when nothing was selected.
func focusScore(study, distraction int) int {
	total := study + distraction
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(study) / float64(total)))
}

func insightFor(score int) string {
	switch {
	case score > 75:
		return insightExcellent
	case score > 50:
		return insightModerate
	default:
		return insightDistracted
	}
}
