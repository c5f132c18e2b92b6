package chart

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"bithumb-ai-trader/internal/interfaces"
	"bithumb-ai-trader/internal/types"
)

// Client fetches a rendered chart image for the traded pair from a
// screenshot endpoint and hands it on as base64 for the multimodal prompt.
type Client struct {
	rest *resty.Client
	url  string
}

var _ interfaces.ChartProvider = (*Client)(nil)

func New(captureURL string) *Client {
	return &Client{
		rest: resty.New().SetTimeout(30 * time.Second),
		url:  captureURL,
	}
}

func (c *Client) Snapshot(ctx context.Context) (*types.ChartSnapshot, error) {
	resp, err := c.rest.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("chart fetch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("chart http %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, fmt.Errorf("chart: empty response")
	}
	if ct := resp.Header().Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("chart: unexpected content type %q", ct)
	}

	return &types.ChartSnapshot{
		PNGBase64:  base64.StdEncoding.EncodeToString(body),
		CapturedAt: time.Now().Unix(),
	}, nil
}
