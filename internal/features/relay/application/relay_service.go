package application

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"shop-control/backend/internal/features/relay/domain"
	"shop-control/backend/internal/features/relay/infrastructure"
)

// RelayService defines the interface for the chat command handlers. Each
// method returns the text to reply with; failures are reported in that text.
type RelayService interface {
	Start(ctx context.Context) string
	PriceUpdate(ctx context.Context, args string) string
	// Handle dispatches by command name. ok is false for unknown commands.
	Handle(ctx context.Context, command, args string) (reply string, ok bool)
}

// relayService is the implementation of RelayService.
type relayService struct {
	webhook infrastructure.WebhookClient
}

// NewRelayService creates a new instance of relayService.
func NewRelayService(webhook infrastructure.WebhookClient) RelayService {
	return &relayService{webhook: webhook}
}

func (s *relayService) Start(context.Context) string {
	return domain.StartMessage
}

// PriceUpdate forwards the feed URL to the webhook in a single attempt.
func (s *relayService) PriceUpdate(ctx context.Context, args string) string {
	cmd, ok := domain.ParsePriceUpdate(args)
	if !ok {
		return domain.PriceUpdateUsage
	}

	status, err := s.webhook.StartPriceUpdate(ctx, cmd)
	if err != nil {
		log.Printf("[ERROR] price update for %s failed: %v", cmd.FeedURL, err)
		return fmt.Sprintf("Webhook request failed: %v", err)
	}
	if status < http.StatusMultipleChoices {
		return domain.PriceUpdateStarted
	}
	log.Printf("[WARN] price update for %s: webhook returned %d", cmd.FeedURL, status)
	return fmt.Sprintf("n8n error: %d", status)
}

func (s *relayService) Handle(ctx context.Context, command, args string) (string, bool) {
	switch command {
	case domain.CommandStart:
		return s.Start(ctx), true
	case domain.CommandPriceUpdate:
		return s.PriceUpdate(ctx, args), true
	default:
		return "", false
	}
}
