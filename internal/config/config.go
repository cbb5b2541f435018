package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"shop-control/backend/internal/apperror"
)

const (
	DefaultGatewayPort   = "8000"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultModel         = "gpt-4o-mini"
	DefaultWebhookURL    = "http://localhost:5678/webhook/start-price-update"
)

// GatewayConfig is built once at startup and handed to the completion gateway.
type GatewayConfig struct {
	Port string

	// OpenAI-compatible upstream. An empty APIKey puts the gateway in
	// degraded mode: completions return an empty result without calling out.
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	Model           string
	UpstreamTimeout time.Duration
}

// RelayConfig is built once at startup and handed to the webhook relay.
type RelayConfig struct {
	TelegramBotToken string
	WebhookURL       string
	WebhookTimeout   time.Duration
}

// LoadGateway reads the gateway settings from the environment. Every value
// has a default, so it never fails.
func LoadGateway() *GatewayConfig {
	return &GatewayConfig{
		Port:            getEnvOrDefault("PORT", DefaultGatewayPort),
		OpenAIAPIKey:    strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:   strings.TrimRight(getEnvOrDefault("OPENAI_BASE_URL", DefaultOpenAIBaseURL), "/"),
		Model:           getEnvOrDefault("MODEL", DefaultModel),
		UpstreamTimeout: getEnvAsSecondsOrDefault("OPENAI_TIMEOUT_SECONDS", 60*time.Second),
	}
}

// LoadRelay reads the relay settings from the environment. A missing bot
// token is a configuration error.
func LoadRelay() (*RelayConfig, error) {
	token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	if token == "" {
		return nil, apperror.Configuration("TELEGRAM_BOT_TOKEN missing")
	}
	return &RelayConfig{
		TelegramBotToken: token,
		WebhookURL:       getEnvOrDefault("N8N_START_WEBHOOK", DefaultWebhookURL),
		WebhookTimeout:   getEnvAsSecondsOrDefault("WEBHOOK_TIMEOUT_SECONDS", 120*time.Second),
	}, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsSecondsOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return time.Duration(n) * time.Second
}
