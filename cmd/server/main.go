package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/englishhub/sitting-backend/internal/auth"
	"github.com/englishhub/sitting-backend/internal/catalog"
	"github.com/englishhub/sitting-backend/internal/config"
	"github.com/englishhub/sitting-backend/internal/grading"
	"github.com/englishhub/sitting-backend/internal/handler"
	"github.com/englishhub/sitting-backend/internal/logger"
	"github.com/englishhub/sitting-backend/internal/router"
	"github.com/englishhub/sitting-backend/internal/service"
	"github.com/englishhub/sitting-backend/internal/session"
	"github.com/englishhub/sitting-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Sitting Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Token Verification ────────────────────────────────────────────
	tokens := auth.NewTokenService(cfg.JWTSecret)

	// ─── Collaborator Clients ──────────────────────────────────────────
	catalogClient := catalog.NewClient(cfg.ContentServiceURL, cfg.CollaboratorTimeout, log)
	gradingClient := grading.NewClient(cfg.GradingServiceURL, cfg.CollaboratorTimeout, log)

	// ─── Sitting Registry ──────────────────────────────────────────────
	// All sitting state is memory resident; a restart ends every sitting.
	registry := session.NewRegistry(cfg.SittingGrace, log)

	// ─── Services & Handlers ───────────────────────────────────────────
	sittingService := service.NewSittingService(catalogClient, gradingClient, registry, log)

	handlers := &router.Handlers{
		Session: handler.NewSessionHandler(sittingService),
		WS:      handler.NewWSHandler(sittingService, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(tokens, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
