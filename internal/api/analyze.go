package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/studyhall-labs/studybuddy/internal/analytics"
	"github.com/studyhall-labs/studybuddy/internal/events"
)

type analyzeRequest struct {
	FilterMode string `json:"filter_mode"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type analyzeResponse struct {
	analytics.Report
	FilterApplied string `json:"filter_applied"`
}

// analyze handles POST /api/analyze. An empty body means "all".
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	window, err := analytics.ParseWindow(req.FilterMode, req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	log, err := s.deps.Log.ReadAll(r.Context())
	if err != nil {
		s.logger.Error("analysis read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read messages")
		return
	}

	report := analytics.Analyze(log, s.deps.Log.SelfID(), window, s.now())

	events.PublishAnalyzed(r.Context(), s.deps.Announcer, events.AnalyzedEvent{
		FilterMode: string(window.Mode),
		FocusScore: report.FocusScore,
		Total:      report.StudyCount + report.DistractionCount,
	}, s.logger)

	writeJSON(w, http.StatusOK, analyzeResponse{
		Report:        report,
		FilterApplied: string(window.Mode),
	})
}
