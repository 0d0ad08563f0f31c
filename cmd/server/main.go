package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/learn-flow/internal/config"
	"github.com/nguyentantai21042004/learn-flow/internal/llm"
	"github.com/nguyentantai21042004/learn-flow/internal/logger"
	"github.com/nguyentantai21042004/learn-flow/internal/server"
	"github.com/nguyentantai21042004/learn-flow/internal/session"
	"github.com/nguyentantai21042004/learn-flow/internal/summarize"
	"github.com/nguyentantai21042004/learn-flow/internal/transcript"
	"github.com/nguyentantai21042004/learn-flow/internal/translate"
	"github.com/nguyentantai21042004/learn-flow/internal/tts"
	"github.com/nguyentantai21042004/learn-flow/internal/workflow"
	"github.com/nguyentantai21042004/learn-flow/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Optional .env for local development
	_ = godotenv.Load()

	configPath := os.Getenv("LEARNFLOW_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "LearnFlow Server")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Configuration loaded from %s", configPath)

	// Initialize executors
	exec := executor.New()
	transcripts := transcript.New(cfg.YouTube, log)
	translator := translate.New(cfg.Translator, log)
	summarizer := summarize.New(cfg.Summarizer, log)
	llmClient := llm.New(cfg.LLM, log)
	speech := tts.New(cfg.TTS, log)
	local := transcript.NewLocalEngine(cfg.Whisper, exec, log)

	controller := workflow.New(workflow.Executors{
		Transcripts: transcripts,
		Translator:  translator,
		Summarizer:  summarizer,
		LLM:         llmClient,
		Speech:      speech,
	}, log, time.Duration(cfg.Server.TaskTimeoutSec)*time.Second)

	store := session.NewStore(time.Duration(cfg.Server.SessionTTLMin) * time.Minute)

	srv := server.New(*cfg, controller, store, local, log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Expired sessions are collected in the background
	go store.StartSweeper(ctx, 5*time.Minute)

	// Hot-reload request-scoped tunables when the config file changes
	watcher, err := config.NewWatcher(configPath, func(ctx context.Context, cfg *config.Config) {
		log.Info(ctx, "Configuration reloaded from %s", configPath)
		srv.Reload(*cfg)
	})
	if err != nil {
		log.Warn(ctx, "Config watcher unavailable: %v", err)
	} else {
		defer watcher.Stop()
		go func() {
			if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn(ctx, "Config watcher stopped: %v", err)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Info(ctx, "Listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	if local.Enabled() {
		log.Info(ctx, "Local transcription enabled: %s", cfg.Whisper.ModelPath)
	} else {
		log.Info(ctx, "Local transcription disabled (no whisper binary configured)")
	}

	select {
	case sig := <-sigChan:
		log.Info(ctx, "Received signal %v, shutting down", sig)
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Shutdown error: %v", err)
	}

	log.Info(ctx, "Server stopped")
}
