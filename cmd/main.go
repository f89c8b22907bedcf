// Package main provides the entry point for the vidask service: ask a
// natural-language question about a YouTube video and get an answer grounded
// in the video's caption transcript.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vidask/vidask/internal/api/handlers"
	"github.com/vidask/vidask/internal/api/router"
	"github.com/vidask/vidask/internal/config"
	"github.com/vidask/vidask/internal/services/analyzer"
	"github.com/vidask/vidask/internal/services/captions"
	"github.com/vidask/vidask/internal/services/inference"
	"github.com/vidask/vidask/internal/services/metadata"
	"github.com/vidask/vidask/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting vidask service")

	// Initialize the Gemini inference client
	llm, err := inference.NewGemini(context.Background(), &cfg.Gemini)
	if err != nil {
		logger.Fatalf("Failed to initialize Gemini client: %v", err)
	}

	// Initialize the caption source and metadata fetcher
	captionSource := captions.NewScraper(cfg.YouTube.FetchTimeout)
	metadataFetcher := metadata.NewFetcher(cfg.YouTube.FetchTimeout)

	// Initialize the analysis pipeline
	pipeline := analyzer.New(captionSource, llm, metadataFetcher)

	// Initialize handlers and router
	analyzeHandler := handlers.NewAnalyzeHandler(pipeline)
	healthHandler := handlers.NewHealthHandler()
	r := router.NewRouter(cfg, analyzeHandler, healthHandler)

	server := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		Handler: r.Engine(),
	}

	// Start server
	go func() {
		logger.Infof("Starting server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Failed to shut down server gracefully: %v", err)
	}

	logger.Info("Server shutdown complete")
}
