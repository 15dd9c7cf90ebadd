package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"voicedesk/internal/config"
	"voicedesk/internal/handler"
	"voicedesk/internal/middleware"
	"voicedesk/internal/service/exchange"
	"voicedesk/internal/service/voice"
	"voicedesk/internal/session"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	// Load the exchange endpoint table
	directory, err := exchange.LoadDirectory()
	if err != nil {
		log.Fatalf("Failed to load exchange endpoints: %v", err)
	}
	logger.Info("exchange endpoints loaded", "exchanges", directory.Names())

	// Create clients and the session registry
	marketClient := exchange.NewClient(cfg, directory, logger)
	voiceClient := voice.NewClient(cfg, logger)
	registry := session.NewRegistry(logger)

	if cfg.VoiceAPIKey == "" {
		logger.Warn("VOICE_API_KEY is not set; session start will fail until it is configured")
	}

	// Create handlers
	voiceHandler := handler.NewVoiceHandler(voiceClient, registry, marketClient, logger)
	marketHandler := handler.NewMarketHandler(marketClient, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", marketHandler.HealthCheck)

	// Market data routes
	mux.HandleFunc("GET /api/exchanges", marketHandler.ListExchanges)
	mux.HandleFunc("GET /api/symbols/{exchange}", marketHandler.GetSymbols)
	mux.HandleFunc("GET /api/price/{exchange}/{symbol}", marketHandler.GetPrice)

	// Voice session routes
	mux.HandleFunc("POST /voice/sessions", voiceHandler.StartSession)
	mux.HandleFunc("GET /voice/sessions/{id}", voiceHandler.GetStatus)
	mux.HandleFunc("DELETE /voice/sessions/{id}", voiceHandler.StopSession)
	mux.HandleFunc("POST /voice/webhook", voiceHandler.Webhook)

	// Build middleware chain
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	// CORS - outermost so OPTIONS pre-flight requests short-circuit
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
