package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/medviz/medical-analyzer/backend/internal/api/handlers"
	"github.com/medviz/medical-analyzer/backend/internal/api/routes"
	"github.com/medviz/medical-analyzer/backend/internal/application/services"
	"github.com/medviz/medical-analyzer/backend/internal/infrastructure/clients/gemini"
	"github.com/medviz/medical-analyzer/backend/internal/infrastructure/observability"
	"github.com/medviz/medical-analyzer/backend/pkg/config"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	geminiClient := gemini.NewClient(&cfg.Gemini)
	if geminiClient.Configured() {
		log.Info().Str("model", geminiClient.Model()).Msg("Gemini API configured")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not found in environment variables")
	}

	analysisService := services.NewAnalysisService(geminiClient)

	router := routes.NewRouter(
		handlers.NewAnalysisHandler(analysisService),
		handlers.NewHealthHandler(cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion),
		handlers.NewStaticHandler(cfg.Static.Dir),
		cfg.CORS.AllowedOrigins,
		metrics,
	)
	handler := router.SetupRoutes()

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
