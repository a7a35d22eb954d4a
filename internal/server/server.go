package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/highroll-gg/bigwin-notifier/internal/config"
	"github.com/highroll-gg/bigwin-notifier/internal/db"
	"github.com/highroll-gg/bigwin-notifier/internal/observability/tracing"
	"github.com/highroll-gg/bigwin-notifier/internal/services"
)

const (
	readTimeout  = 10 * time.Second
	idleTimeout  = 30 * time.Second
	// a full cycle pages the upstream and paces webhook chunks, so the
	// write timeout has to cover the whole thing
	writeTimeout = 2 * time.Minute
)

// Server exposes the poll trigger: an external scheduler hits GET /run and
// gets the full cycle trace back as JSON.
type Server struct {
	cfg     *config.ServerConfig
	service *services.Service
	store   db.DbInterface
}

func New(cfg *config.ServerConfig, service *services.Service, store db.DbInterface) *Server {
	return &Server{
		cfg:     cfg,
		service: service,
		store:   store,
	}
}

// Start blocks serving HTTP until the listener fails.
func (s *Server) Start() error {
	router := chi.NewRouter()
	router.Use(tracing.Middleware)
	router.Get("/run", s.handleRun)
	router.Get("/healthz", s.handleHealth)

	server := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	log.Info().Msgf("Starting trigger server on %s", s.cfg.Addr())
	return server.ListenAndServe()
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.RunCycle(r.Context())

	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
	}
	writeJSON(r.Context(), w, status, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeJSON(r.Context(), w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to encode response")
	}
}
