package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pagesum/internal/api"
	"pagesum/internal/config"
	"pagesum/internal/llm"
	"pagesum/internal/splitter"
	"pagesum/internal/summarize"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize collaborators.
	model := llm.NewOpenAIClient(llm.Config{
		BaseURL:   cfg.ModelBaseURL,
		APIKey:    cfg.ModelAPIKey,
		Model:     cfg.Model,
		Timeout:   cfg.ModelTimeout,
		MaxTokens: cfg.MaxCompletionTokens,
	})
	split := splitter.NewRegistry(splitter.Options{
		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
	})

	// Initialize pipeline and HTTP server.
	pipeline := summarize.NewPipeline(split, model, cfg.MaxConcurrentSummarize, log)
	srv := api.NewServer(pipeline, model, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // summarization holds the response open for N+1 model calls
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting pagesum", "port", cfg.Port, "model", cfg.Model, "base_url", cfg.ModelBaseURL)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
