package feargreed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"bithumb-ai-trader/internal/interfaces"
	"bithumb-ai-trader/internal/types"
)

const DefaultURL = "https://api.alternative.me/fng/"

// Client fetches the crypto Fear & Greed index. The API returns values as
// strings, so everything is parsed before it reaches the bundle.
type Client struct {
	rest *resty.Client
	url  string
}

var _ interfaces.FearGreedProvider = (*Client)(nil)

func New(apiURL string) *Client {
	if apiURL == "" {
		apiURL = DefaultURL
	}
	return &Client{
		rest: resty.New().SetTimeout(10 * time.Second),
		url:  apiURL,
	}
}

type fngResponse struct {
	Data []struct {
		Value               string `json:"value"`
		ValueClassification string `json:"value_classification"`
		Timestamp           string `json:"timestamp"`
	} `json:"data"`
}

func (c *Client) Index(ctx context.Context) (*types.FearGreed, error) {
	var out fngResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("limit", "1").
		SetResult(&out).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("fear greed fetch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fear greed http %d", resp.StatusCode())
	}
	if len(out.Data) == 0 {
		return nil, fmt.Errorf("fear greed: empty response")
	}

	d := out.Data[0]
	value, err := strconv.Atoi(d.Value)
	if err != nil {
		return nil, fmt.Errorf("fear greed: parse value %q: %w", d.Value, err)
	}
	ts, err := strconv.ParseInt(d.Timestamp, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("fear greed: parse timestamp %q: %w", d.Timestamp, err)
	}

	return &types.FearGreed{
		Value:          value,
		Classification: d.ValueClassification,
		Ts:             ts,
	}, nil
}
