package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/studyhall-labs/studybuddy/internal/events"
	"github.com/studyhall-labs/studybuddy/internal/store"
	"github.com/studyhall-labs/studybuddy/internal/tutor"
	"github.com/studyhall-labs/studybuddy/internal/watch"
)

// Deps are the collaborators the HTTP surface exposes. Announcer and
// Watcher are optional.
type Deps struct {
	Log       *store.Log
	Explainer *tutor.Explainer
	Announcer events.Announcer
	Watcher   *watch.Watcher
}

type Server struct {
	router *chi.Mux
	port   int
	deps   Deps
	logger *slog.Logger
	now    func() time.Time
}

func NewServer(port int, deps Deps, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		port:   port,
		deps:   deps,
		logger: logger,
		now:    time.Now,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/status", s.status)
	router.Route("/api", func(r chi.Router) {
		r.Post("/chat/send", s.sendMessage)
		r.Get("/chat/get", s.getConversation)
		r.Post("/analyze", s.analyze)
		r.Post("/explain", s.explain)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "studybuddy",
		"user_id": s.deps.Log.SelfID(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
