package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"shop-control/backend/internal/apperror"
	"shop-control/backend/internal/features/completion/domain"
)

// CompletionClient defines the interface for a JSON-mode chat completion client.
type CompletionClient interface {
	// Configured reports whether an API credential is set. Callers must not
	// call CreateJSONCompletion on an unconfigured client.
	Configured() bool
	// CreateJSONCompletion sends one chat completion and returns the message
	// content of the first choice. Empty content is a protocol error.
	CreateJSONCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ClientConfig holds configuration for the OpenAI-compatible client.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// openAIClient is the implementation of CompletionClient.
type openAIClient struct {
	client     *openai.Client
	model      string
	configured bool
}

// NewOpenAIClient creates a new OpenAI client. An empty APIKey yields a client
// that reports Configured() == false.
func NewOpenAIClient(cfg ClientConfig) CompletionClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &openAIClient{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      cfg.Model,
		configured: cfg.APIKey != "",
	}
}

func (c *openAIClient) Configured() bool {
	return c.configured
}

// CreateJSONCompletion calls /chat/completions with a JSON-object response format.
func (c *openAIClient) CreateJSONCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !c.configured {
		return "", apperror.Configuration("OPENAI_API_KEY not set")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: domain.Temperature,
	})
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", apperror.UpstreamProtocol("Invalid OpenAI response: no choices", nil)
	}
	// go-openai decodes a missing or null content as "". JSON mode never
	// produces an empty message, so treat it as a broken envelope.
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", apperror.UpstreamProtocol("Invalid OpenAI response: missing message content", nil)
	}
	return content, nil
}

// classifyError maps go-openai failures onto the shared error taxonomy.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apperror.UpstreamHTTP(apiErr.HTTPStatusCode, fmt.Sprintf("OpenAI error %d", apiErr.HTTPStatusCode), err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return apperror.UpstreamHTTP(reqErr.HTTPStatusCode, fmt.Sprintf("OpenAI error %d", reqErr.HTTPStatusCode), err)
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperror.UpstreamTransport("OpenAI request failed", err)
	}

	// Anything else comes from decoding the response envelope.
	return apperror.UpstreamProtocol("Invalid OpenAI response", err)
}
