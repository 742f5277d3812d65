package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	leaderboardservice "github.com/scorequest/scorequest-backend/app/modules/leaderboard/application"
	"github.com/scorequest/scorequest-backend/config"
)

// Server exposes the read-only leaderboard API. Reads serve the
// materialized store and never recompute.
type Server struct {
	httpServer  *http.Server
	leaderboard leaderboardservice.Service
	logger      *slog.Logger
}

// NewServer builds the HTTP server with routes and middleware configured.
func NewServer(
	cfg *config.Config,
	leaderboard leaderboardservice.Service,
	registry *prometheus.Registry,
	logger *slog.Logger,
) *Server {
	s := &Server{
		leaderboard: leaderboard,
		logger:      logger,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	limiter := newClientLimiter(cfg.HTTP.PublicRateLimit, cfg.HTTP.PublicRateBurst)
	r.Route("/api/events/{eventID}", func(r chi.Router) {
		r.Use(limiter.middleware)
		r.Get("/leaderboard", s.handleGetLeaderboard)
		r.Get("/leaderboard.xlsx", s.handleExportLeaderboard)
		r.Get("/leaderboard/chart.png", s.handleLeaderboardChart)
	})

	s.httpServer = &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
