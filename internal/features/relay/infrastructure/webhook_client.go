package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shop-control/backend/internal/apperror"
	"shop-control/backend/internal/features/relay/domain"
)

// WebhookClient starts workflows by posting to an automation webhook.
type WebhookClient interface {
	// StartPriceUpdate posts the command once and returns the HTTP status.
	// A non-2xx status is not an error; transport failures are.
	StartPriceUpdate(ctx context.Context, cmd domain.PriceUpdateCommand) (int, error)
}

type webhookClient struct {
	url        string
	httpClient *http.Client
}

// NewWebhookClient creates a client posting to url with the given timeout.
func NewWebhookClient(url string, timeout time.Duration) WebhookClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &webhookClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *webhookClient) StartPriceUpdate(ctx context.Context, cmd domain.PriceUpdateCommand) (int, error) {
	body, err := json.Marshal(cmd)
	if err != nil {
		return 0, fmt.Errorf("webhook: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, apperror.UpstreamTransport("webhook request failed", err)
	}
	defer func() { _ = res.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 1<<20))

	return res.StatusCode, nil
}
