package transcript

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"bithumb-ai-trader/internal/interfaces"
)

// Client fetches analyst commentary text, e.g. a transcribed market-outlook
// video, to be quoted verbatim in the advisory bundle.
type Client struct {
	rest     *resty.Client
	url      string
	maxChars int
}

var _ interfaces.TranscriptProvider = (*Client)(nil)

func New(sourceURL string, maxChars int) *Client {
	return &Client{
		rest:     resty.New().SetTimeout(15 * time.Second),
		url:      sourceURL,
		maxChars: maxChars,
	}
}

func (c *Client) Transcript(ctx context.Context) (string, error) {
	resp, err := c.rest.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return "", fmt.Errorf("transcript fetch: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("transcript http %d", resp.StatusCode())
	}

	text := strings.TrimSpace(resp.String())
	if text == "" {
		return "", fmt.Errorf("transcript: empty response")
	}

	// Truncation is rune-safe so a multibyte character is never split.
	if c.maxChars > 0 {
		runes := []rune(text)
		if len(runes) > c.maxChars {
			text = string(runes[:c.maxChars])
		}
	}
	return text, nil
}
