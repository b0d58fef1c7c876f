// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/furnish-labs/inventory-agent/internal/agent"
	"github.com/furnish-labs/inventory-agent/internal/config"
	"github.com/furnish-labs/inventory-agent/internal/handler"
	"github.com/furnish-labs/inventory-agent/internal/llm"
	"github.com/furnish-labs/inventory-agent/internal/middleware"
	"github.com/furnish-labs/inventory-agent/internal/store"
	"github.com/furnish-labs/inventory-agent/pkg/logger"
	"github.com/furnish-labs/inventory-agent/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting inventory agent server")

	if cfg.MongoURI == "" {
		log.Error("MONGO_ATLAS_URI environment variable is required")
		os.Exit(1)
	}

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "inventory-agent", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to MongoDB and verify connectivity before accepting traffic.
	// The server must never start listening without a live database connection.
	db, err := store.Connect(ctx, store.Config{
		URI:        cfg.MongoURI,
		Database:   cfg.MongoDatabase,
		Collection: cfg.MongoCollection,
		IndexName:  cfg.VectorIndexName,
		Dimensions: cfg.EmbeddingDimensions,
	}, log)
	if err != nil {
		log.Error("failed to connect to MongoDB", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close(ctx)

	if err := db.Ping(ctx); err != nil {
		log.Error("MongoDB ping failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("successfully connected to MongoDB")

	// Initialize the embedding client. The server boots without a model
	// API key, but every chat call will fail downstream until one is set.
	var embedder llm.Embedder
	if cfg.OpenAIAPIKey != "" {
		openaiClient, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey)
		if err != nil {
			log.Warn("failed to create OpenAI client", zap.Error(err))
		} else {
			embedder = openaiClient
		}
	} else {
		log.Warn("OPENAI_API_KEY is not set, inventory search will be unavailable")
	}

	// Initialize the conversation agent
	agentSvc, err := agent.New(ctx, agent.Config{
		OpenAIAPIKey:   cfg.OpenAIAPIKey,
		GeminiProject:  cfg.GeminiProject,
		GeminiLocation: cfg.GeminiLocation,
	}, db, embedder, log)
	if err != nil {
		log.Warn("agent is not configured, chat calls will fail", zap.Error(err))
	}

	// Initialize handlers
	chatHandler := handler.NewChatHandler(agentSvc, log)
	healthHandler := handler.NewHealthHandler(db)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", chatHandler.Banner)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	// Chat routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
		r.Post("/chat", chatHandler.Start)
		r.Post("/chat/{threadId}", chatHandler.Continue)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		log.Info("test endpoints",
			zap.String("banner", fmt.Sprintf("GET  http://localhost:%s/", cfg.ServerPort)),
			zap.String("start_chat", fmt.Sprintf("POST http://localhost:%s/chat", cfg.ServerPort)),
			zap.String("continue_chat", fmt.Sprintf("POST http://localhost:%s/chat/{threadId}", cfg.ServerPort)),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
