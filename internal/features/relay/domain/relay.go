package domain

import "strings"

// Bot commands.
const (
	CommandStart       = "start"
	CommandPriceUpdate = "price_update"
)

// Reply texts.
const (
	StartMessage       = "Shop Control Bot: /price_update <feed_url>"
	PriceUpdateUsage   = "Usage: /price_update <feed_url>"
	PriceUpdateStarted = "Started price update"
)

// PriceUpdateCommand is the payload posted to the workflow webhook.
type PriceUpdateCommand struct {
	FeedURL string `json:"feed_url"`
}

// ParsePriceUpdate takes the first whitespace-delimited argument as the feed
// URL. ok is false when there is no argument. The URL is not validated.
func ParsePriceUpdate(args string) (cmd PriceUpdateCommand, ok bool) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return PriceUpdateCommand{}, false
	}
	return PriceUpdateCommand{FeedURL: fields[0]}, true
}
