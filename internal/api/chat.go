package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/studyhall-labs/studybuddy/internal/events"
	"github.com/studyhall-labs/studybuddy/internal/message"
)

type sendRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// sendMessage handles POST /api/chat/send. The sender is always the
// configured local identity; clients cannot speak for other participants.
func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	msg, err := message.New(s.deps.Log.SelfID(), req.ReceiverID, req.Content, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.deps.Log.Append(r.Context(), msg); err != nil {
		s.logger.Error("append failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store message")
		return
	}

	events.PublishAppended(r.Context(), s.deps.Announcer, events.AppendedEvent{
		MessageID:  msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Timestamp:  msg.Timestamp.UTC().Format(time.RFC3339),
	}, s.logger)

	if s.deps.Watcher != nil {
		s.deps.Watcher.Refresh()
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":  "success",
		"message": msg,
	})
}

// getConversation handles GET /api/chat/get?partner_id=X: the two-party
// subsequence of the log, in insertion order.
func (s *Server) getConversation(w http.ResponseWriter, r *http.Request) {
	partnerID := r.URL.Query().Get("partner_id")
	if partnerID == "" {
		writeError(w, http.StatusBadRequest, "partner_id is required")
		return
	}

	msgs, err := s.deps.Log.Conversation(r.Context(), partnerID)
	if err != nil {
		s.logger.Error("conversation read failed", "partner", partnerID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read messages")
		return
	}
	if msgs == nil {
		msgs = []message.Message{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"messages":        msgs,
		"current_user_id": s.deps.Log.SelfID(),
	})
}
