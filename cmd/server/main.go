package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-gateway/internal/config"
	"chat-gateway/internal/database"
	"chat-gateway/internal/handlers"
	"chat-gateway/internal/repository"
	"chat-gateway/internal/router"
	"chat-gateway/internal/services"
)

func main() {
	log.Println("🚀 Starting Chat Gateway...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Completion Provider ────
	var provider services.CompletionProvider
	switch cfg.Provider {
	case config.ProviderGemini:
		gemini, err := services.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Temperature)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer gemini.Close()
		provider = gemini
		log.Printf("✓ Gemini provider initialized (model %s)", cfg.GeminiModel)
	default:
		provider = services.NewGroqProvider(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, cfg.Temperature)
		log.Printf("✓ Groq provider initialized (model %s)", cfg.GroqModel)
	}

	// ──── Step 3: Initialize Chat History (optional) ────
	var recorder *services.HistoryRecorder
	if cfg.HistoryEnabled() {
		store, closeStore := openHistoryStore(cfg)
		defer closeStore()
		recorder = services.NewHistoryRecorder(store, cfg.HistoryQueueSize)
		log.Printf("✓ Chat history enabled (%s)", cfg.HistoryBackend)
	} else {
		log.Println("✓ Chat history disabled")
	}

	// ──── Step 4: Initialize Gateway & Handlers ────
	gateway := services.NewChatGateway(provider, recorder, cfg.ProviderTimeout, cfg.ProviderAPIKey())
	chatHandler := handlers.NewChatHandler(gateway, cfg.MaxBodyBytes, cfg.ProviderErrorDetail)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(chatHandler, cfg.DocsPath, cfg.FrontendURL)

	// Leave room for the provider call
	writeTimeout := cfg.ProviderTimeout + 15*time.Second

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)

		if recorder != nil {
			recorder.Close()
		}
		close(idleConnsClosed)
	}()

	log.Printf("✓ Chat Gateway ready on http://localhost:%s", cfg.Port)
	log.Printf("  Chat: POST http://localhost:%s/chat", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	<-idleConnsClosed
}

// openHistoryStore connects the configured history backend and returns it
// with its cleanup function.
func openHistoryStore(cfg *config.Config) (services.HistoryStore, func()) {
	switch cfg.HistoryBackend {
	case config.HistoryPostgres:
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("✗ PostgreSQL connection failed: %v", err)
		}
		log.Println("✓ PostgreSQL connected")

		if err := database.RunMigrations(pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			log.Fatalf("✗ Database migration failed: %v", err)
		}
		log.Println("✓ Database migrations applied")
		return repository.NewHistoryRepo(pool), pool.Close

	case config.HistoryRedis:
		client, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		log.Println("✓ Redis connected")
		return repository.NewRedisHistoryRepo(client, cfg.HistoryRedisStream), func() { client.Close() }

	default:
		log.Printf("✓ History file: %s", cfg.HistoryXLSXPath)
		return repository.NewXLSXHistoryRepo(cfg.HistoryXLSXPath), func() {}
	}
}
