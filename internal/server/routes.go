package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ward28/wardbot/internal/server/middleware"
)

func (s *Server) registerRoutes(limiterCtx context.Context) {
	// Health check (unauthenticated).
	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Slack interactivity webhook, authenticated by request signature.
	s.router.Post("/slack/interactions", s.interactions)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(limiterCtx, s.cfg.Server.RateLimitRPS, s.cfg.Server.RateLimitBurst))

		// Scheduled triggers, authenticated by the shared cron secret.
		r.Route("/crons", func(r chi.Router) {
			r.Use(middleware.CronAuth(s.cfg.Cron.Secret))
			r.Get("/speakers", s.handleSpeakersCron)
		})

		r.Get("/interviews", s.handleInterviews)
		r.Post("/post-interviews-to-slack", s.handlePostInterviews)
		r.Post("/post-prayers-to-slack", s.handlePostPrayers)
		r.Post("/post-ward-council-reminder", s.handleWardCouncilReminder)
	})
}
