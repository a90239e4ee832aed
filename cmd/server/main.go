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

	"voicebot-backend/internal/config"
	"voicebot-backend/internal/database"
	"voicebot-backend/internal/handlers"
	"voicebot-backend/internal/middleware"
	"voicebot-backend/internal/repository"
	"voicebot-backend/internal/router"
	"voicebot-backend/internal/services"
)

func main() {
	log.Println("Starting VoiceBot Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Ensure Database Schema ────
	if err := database.EnsureSchema(pool); err != nil {
		log.Fatalf("✗ Schema setup failed: %v", err)
	}
	log.Println("✓ Database schema ready")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	chatRepo := repository.NewChatRepo(pool)

	// ──── Initialize Services ────
	sessionStore := services.NewSessionStore(redisClient)
	sessionAuth := middleware.NewSessionAuth(cfg.SessionSecret, sessionStore)
	authService := services.NewAuthService(userRepo, sessionStore, sessionAuth)

	groqService := services.NewGroqService(
		cfg.GroqAPIKey,
		cfg.GroqModel,
		cfg.GroqBaseURL,
		time.Duration(cfg.GroqTimeoutSeconds)*time.Second,
	)
	fallbackService := services.NewFallbackService(nil)
	chatService := services.NewChatService(groqService, fallbackService, chatRepo)

	if groqService.Enabled() {
		log.Println("✓ AI mode: Groq API enabled")
	} else {
		log.Println("✓ AI mode: fallback only (set GROQ_API_KEY for live completions)")
	}

	// ──── Initialize Handlers ────
	secureCookie := cfg.Env == "production"
	authHandler := handlers.NewAuthHandler(authService, secureCookie)
	chatHandler := handlers.NewChatHandler(chatService, groqService)
	userHandler := handlers.NewUserHandler(userRepo, chatRepo)
	adminHandler := handlers.NewAdminHandler(userRepo, chatRepo)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(
		sessionAuth,
		authHandler,
		chatHandler,
		userHandler,
		adminHandler,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ VoiceBot Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
