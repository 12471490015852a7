package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"aftercare-assistant/internal/core"
	"aftercare-assistant/pkg"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req pkg.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	handle := s.sessions.Acquire(req.SessionID)
	defer handle.Release()
	sess := handle.Session()

	if req.PatientName != "" {
		if sess.PatientName != "" && !strings.EqualFold(sess.PatientName, req.PatientName) {
			// The caller switched identities mid-session; drop the
			// cached record and resolve the new name.
			sess.PatientData = nil
		}
		sess.PatientName = req.PatientName
	}

	history := sess.History
	if len(history) == 0 && len(req.ConversationHistory) > 0 {
		history = req.ConversationHistory
	}

	state := core.TurnState{
		SessionID:   req.SessionID,
		PatientName: sess.PatientName,
		PatientData: sess.PatientData,
		Message:     req.Message,
		History:     history,
	}

	state, err := s.runner.Run(r.Context(), state)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", req.SessionID).Msg("turn failed")
		respondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	sess.PatientData = state.PatientData
	sess.LastHandler = state.CurrentHandler
	sess.History = append(history,
		pkg.HistoryMessage{Role: "user", Content: req.Message},
		pkg.HistoryMessage{Role: "assistant", Content: state.Response},
	)
	handle.Update(sess)

	sources := state.Sources
	if sources == nil {
		sources = []pkg.Source{}
	}
	respondJSON(w, http.StatusOK, pkg.ChatResponse{
		Response:    state.Response,
		Agent:       state.CurrentHandler,
		Sources:     sources,
		PatientData: state.PatientData,
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		events := s.audit.BySession(sessionID)
		respondJSON(w, http.StatusOK, map[string]any{
			"events": events,
			"total":  len(events),
		})
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"events": s.audit.Recent(limit),
		"total":  s.audit.Len(),
	})
}

func (s *Server) handlePatients(w http.ResponseWriter, r *http.Request) {
	names, err := s.patients.AllNames(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("patient directory unavailable")
		respondError(w, http.StatusInternalServerError, "failed to list patients")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"patients": names})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.sessions.Delete(id) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"active_sessions": s.sessions.Len(),
		"audit_events":    s.audit.Len(),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}
