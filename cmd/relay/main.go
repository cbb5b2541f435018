package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shop-control/backend/internal/config"
	"shop-control/backend/internal/features/relay/application"
	"shop-control/backend/internal/features/relay/infrastructure"
	"shop-control/backend/internal/features/relay/presentation/telegram"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadRelay()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	webhookClient := infrastructure.NewWebhookClient(cfg.WebhookURL, cfg.WebhookTimeout)
	relayService := application.NewRelayService(webhookClient)

	bot, err := telegram.NewBot(cfg.TelegramBotToken, relayService)
	if err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Webhook relay @%s polling, forwarding to %s", bot.Username(), cfg.WebhookURL)
	if err := bot.Run(ctx); err != nil {
		log.Fatalf("Bot stopped: %v", err)
	}
	log.Println("Shutting down...")
}
