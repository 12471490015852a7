// Package http exposes the assistant over a small JSON API.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"aftercare-assistant/internal/audit"
	"aftercare-assistant/internal/core"
	"aftercare-assistant/internal/session"
)

// TurnRunner executes one conversational turn.
type TurnRunner interface {
	Run(ctx context.Context, state core.TurnState) (core.TurnState, error)
}

// Directory lists the patient names known to the record store.
type Directory interface {
	AllNames(ctx context.Context) ([]string, error)
}

// Server wires the orchestrator, session store and audit log to HTTP.
type Server struct {
	runner   TurnRunner
	sessions *session.Store
	audit    *audit.Log
	patients Directory
	logger   zerolog.Logger
}

func NewServer(runner TurnRunner, sessions *session.Store, auditLog *audit.Log, patients Directory, logger zerolog.Logger) *Server {
	return &Server{
		runner:   runner,
		sessions: sessions,
		audit:    auditLog,
		patients: patients,
		logger:   logger,
	}
}

// Router builds the full route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(allowCORS)

	r.Get("/", s.handleStatus)
	r.Get("/health", s.handleStatus)
	r.Post("/api/chat", s.handleChat)
	r.Get("/api/logs", s.handleLogs)
	r.Get("/api/patients", s.handlePatients)
	r.Delete("/api/session/{id}", s.handleDeleteSession)

	return r
}

func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
