package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"

	"github.com/ward28/wardbot/internal/config"
	"github.com/ward28/wardbot/internal/dedupe"
	"github.com/ward28/wardbot/internal/interaction"
	"github.com/ward28/wardbot/internal/mail"
	"github.com/ward28/wardbot/internal/schedule"
	"github.com/ward28/wardbot/internal/server"
	wardslack "github.com/ward28/wardbot/internal/slack"
	"github.com/ward28/wardbot/internal/store/redis"
)

const speakersWorkflow = "sacrament-speakers"

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Local development convenience; a missing .env file is fine.
	_ = godotenv.Load()

	// Initialize structured logging from environment.
	level, parseErr := zerolog.ParseLevel(os.Getenv("WARDBOT_LOG_LEVEL"))
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("WARDBOT_LOG_FORMAT") == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Connect to Redis; it backs the once-per-cycle send guard.
	cache, err := redis.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer cache.Close()

	// Slack client for messages and modals.
	slackClient := wardslack.NewClient(slacklib.New(cfg.Slack.BotToken))

	// Gmail sender for the weekly speakers email.
	sender, err := mail.NewGmailSender(
		cfg.Mail.From,
		cfg.Mail.GmailClientID,
		cfg.Mail.GmailClientSecret,
		cfg.Mail.GmailRefreshToken,
	)
	if err != nil {
		return err
	}

	guard := dedupe.NewGuard(cache, speakersWorkflow, schedule.NextCutover)

	router := interaction.NewRouter(
		interaction.NewSpeakersModalHandler(slackClient),
		interaction.NewSpeakersSubmitHandler(
			guard,
			sender,
			slackClient,
			cfg.Mail.Recipient,
			cfg.Mail.DryRunRecipient,
		),
	)

	webhook := wardslack.NewHandler(cfg.Slack.SigningSecret, router, cfg.Channels.AutomationTesting)

	fetcher := newScheduleFetcher(cfg)

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create HTTP server with all routes wired.
	srv := server.New(cfg, slackClient, fetcher, webhook.HandleInteractions)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
