package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop-control/backend/internal/config"
	"shop-control/backend/internal/features/completion/application"
	"shop-control/backend/internal/features/completion/infrastructure"
	completion_http "shop-control/backend/internal/features/completion/presentation/http"
	"shop-control/backend/internal/middleware"
	"shop-control/backend/internal/retry"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadGateway()
	if cfg.OpenAIAPIKey == "" {
		log.Println("[WARN] OPENAI_API_KEY not set; completions will return empty results")
	}

	r := gin.Default()
	r.Use(middleware.RequestID())

	// Initialize OpenAI client
	openaiClient := infrastructure.NewOpenAIClient(infrastructure.ClientConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.Model,
		Timeout: cfg.UpstreamTimeout,
	})

	// Initialize services
	completionService := application.NewCompletionService(openaiClient, retry.DefaultPolicy())

	// Routes: /healthz, /api/v1/ai
	completion_http.NewCompletionHandler(completionService).Register(r)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("[ERROR] shutdown: %v", err)
		}
	}()

	log.Printf("Completion gateway listening on :%s (model %s, upstream %s)", cfg.Port, cfg.Model, cfg.OpenAIBaseURL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}
