package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shop-control/backend/internal/features/relay/application"
)

// Sender is the part of the Bot API used to reply.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// UpdateHandler routes incoming bot commands to the relay service.
type UpdateHandler struct {
	sender   Sender
	relay    application.RelayService
	username string
}

// NewUpdateHandler creates a new UpdateHandler. username is the bot's own
// account name, used to skip commands addressed to other bots.
func NewUpdateHandler(sender Sender, relay application.RelayService, username string) *UpdateHandler {
	return &UpdateHandler{sender: sender, relay: relay, username: username}
}

// HandleUpdate answers a command message. Anything that is not a known
// command, or is a command for another bot, is ignored.
func (h *UpdateHandler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.Chat == nil || !message.IsCommand() {
		return
	}
	if !h.addressedToMe(message) {
		return
	}

	reply, ok := h.relay.Handle(ctx, message.Command(), message.CommandArguments())
	if !ok {
		return
	}

	if _, err := h.sender.Send(tgbotapi.NewMessage(message.Chat.ID, reply)); err != nil {
		log.Printf("[ERROR] failed to reply to chat %d: %v", message.Chat.ID, err)
	}
}

// addressedToMe reports whether a command carries no @mention or mentions
// this bot. Telegram usernames are case-insensitive.
func (h *UpdateHandler) addressedToMe(message *tgbotapi.Message) bool {
	_, mention, found := strings.Cut(message.CommandWithAt(), "@")
	if !found {
		return true
	}
	return strings.EqualFold(mention, h.username)
}

// Bot is the long-polling Telegram bot.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *UpdateHandler
}

// NewBot authenticates against the Bot API with token.
func NewBot(token string, relay application.RelayService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Bot{api: api, handler: NewUpdateHandler(api, relay, api.Self.UserName)}, nil
}

// Username returns the bot's account name.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// Run drops updates queued while the bot was offline, then polls until ctx
// is cancelled. Updates are handled one at a time.
func (b *Bot) Run(ctx context.Context) error {
	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		return fmt.Errorf("failed to drop pending updates: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handler.HandleUpdate(ctx, update)
		}
	}
}
