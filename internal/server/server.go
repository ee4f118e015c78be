package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/ward28/wardbot/internal/blockkit"
	"github.com/ward28/wardbot/internal/board"
	"github.com/ward28/wardbot/internal/config"
)

// MessagePoster posts built messages and reads channel metadata.
type MessagePoster interface {
	PostMessage(ctx context.Context, msg blockkit.Message) (string, error)
	ChannelTopic(ctx context.Context, channelID string) (string, error)
}

// ScheduleFetcher assembles the Sunday schedule grouped by the assigned
// member's Trello ID.
type ScheduleFetcher interface {
	GroupedByMember(ctx context.Context) (map[string][]board.Entry, error)
}

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router        chi.Router
	httpServer    *http.Server
	cfg           *config.Config
	poster        MessagePoster
	schedule      ScheduleFetcher
	interactions  http.HandlerFunc
	now           func() time.Time
	limiterCancel context.CancelFunc
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the clock used to resolve the upcoming Sunday.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a Server with all routes wired. interactions handles the Slack
// interactivity webhook.
func New(cfg *config.Config, poster MessagePoster, schedule ScheduleFetcher, interactions http.HandlerFunc, opts ...Option) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)

	limiterCtx, limiterCancel := context.WithCancel(context.Background())

	s := &Server{
		router:        router,
		cfg:           cfg,
		poster:        poster,
		schedule:      schedule,
		interactions:  interactions,
		now:           time.Now,
		limiterCancel: limiterCancel,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerRoutes(limiterCtx)

	return s
}

// Handler returns the underlying HTTP handler. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiterCancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// respondError writes a JSON error body.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// isDryRun reports whether the request asks for dry-run delivery, which
// redirects posts to the automation testing channel.
func isDryRun(r *http.Request) bool {
	return r.URL.Query().Get("dry-run") == "1"
}
