package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/studyhall-labs/studybuddy/internal/tutor"
)

type explainRequest struct {
	Topic string `json:"topic"`
	Level string `json:"level"`
}

// explain handles POST /api/explain: two sequential Wikipedia calls plus
// curated resource links, returned as plain data.
func (s *Server) explain(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Topic == "" || req.Level == "" {
		writeError(w, http.StatusBadRequest, "missing topic or level")
		return
	}

	exp, err := s.deps.Explainer.Explain(r.Context(), req.Topic, tutor.Level(req.Level))
	if errors.Is(err, tutor.ErrTopicNotFound) {
		writeError(w, http.StatusNotFound, "nothing found for that topic")
		return
	}
	if err != nil {
		s.logger.Error("explain failed", "topic", req.Topic, "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch explanation")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"explanation": exp})
}
