package bithumb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"bithumb-ai-trader/internal/interfaces"
	"bithumb-ai-trader/internal/logger"
	"bithumb-ai-trader/internal/types"
)

const defaultBaseURL = "https://api.bithumb.com"

type Params struct {
	Mode      string // DRY_RUN or LIVE
	AccessKey string
	SecretKey string
	Pair      string // e.g. KRW-BTC
	Base      string // e.g. BTC
	Quote     string // e.g. KRW
	BaseURL   string // override for tests
}

// Client talks to the Bithumb v1 (Upbit-compatible) REST API. Public market
// data needs no credentials; account and order endpoints are authenticated
// with a signed token per request.
type Client struct {
	p    Params
	http *resty.Client
}

var _ interfaces.Exchange = (*Client)(nil)

func New(p Params) *Client {
	if p.BaseURL == "" {
		p.BaseURL = defaultBaseURL
	}
	c := resty.New().
		SetBaseURL(p.BaseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2)
	return &Client{p: p, http: c}
}

func (c *Client) Snapshot(ctx context.Context) (types.AccountSnapshot, error) {
	price, err := c.lastPrice(ctx)
	if err != nil {
		return types.AccountSnapshot{}, err
	}

	accounts, err := c.accounts(ctx)
	if err != nil {
		return types.AccountSnapshot{}, err
	}

	snap := types.AccountSnapshot{Price: price}
	for _, a := range accounts {
		switch a.Currency {
		case c.p.Quote:
			snap.QuoteBalance = a.Balance
		case c.p.Base:
			snap.BaseBalance = a.Balance
		}
	}
	return snap, nil
}

func (c *Client) lastPrice(ctx context.Context) (float64, error) {
	var out []struct {
		TradePrice float64 `json:"trade_price"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("markets", c.p.Pair).
		SetResult(&out).
		Get("/v1/ticker")
	if err != nil {
		return 0, fmt.Errorf("bithumb ticker: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("bithumb ticker: status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("bithumb ticker: no data for %s", c.p.Pair)
	}
	if out[0].TradePrice <= 0 {
		return 0, fmt.Errorf("bithumb ticker: non-positive price %v", out[0].TradePrice)
	}
	return out[0].TradePrice, nil
}

type account struct {
	Currency string
	Balance  float64
}

func (c *Client) accounts(ctx context.Context) ([]account, error) {
	token, err := signToken(c.p.AccessKey, c.p.SecretKey, "")
	if err != nil {
		return nil, fmt.Errorf("bithumb auth: %w", err)
	}

	var out []struct {
		Currency string `json:"currency"`
		Balance  string `json:"balance"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetResult(&out).
		Get("/v1/accounts")
	if err != nil {
		return nil, fmt.Errorf("bithumb accounts: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("bithumb accounts: status %d: %s", resp.StatusCode(), resp.String())
	}

	accs := make([]account, 0, len(out))
	for _, a := range out {
		bal, err := strconv.ParseFloat(a.Balance, 64)
		if err != nil {
			return nil, fmt.Errorf("bithumb accounts: parse balance %q: %w", a.Balance, err)
		}
		accs = append(accs, account{Currency: a.Currency, Balance: bal})
	}
	return accs, nil
}

func (c *Client) Orderbook(ctx context.Context) (*types.Orderbook, error) {
	var out []struct {
		Timestamp int64 `json:"timestamp"`
		Units     []struct {
			AskPrice float64 `json:"ask_price"`
			BidPrice float64 `json:"bid_price"`
			AskSize  float64 `json:"ask_size"`
			BidSize  float64 `json:"bid_size"`
		} `json:"orderbook_units"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("markets", c.p.Pair).
		SetResult(&out).
		Get("/v1/orderbook")
	if err != nil {
		return nil, fmt.Errorf("bithumb orderbook: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("bithumb orderbook: status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("bithumb orderbook: no data for %s", c.p.Pair)
	}

	ob := &types.Orderbook{Ts: out[0].Timestamp}
	for _, u := range out[0].Units {
		ob.Bids = append(ob.Bids, types.OrderbookLevel{Price: u.BidPrice, Qty: u.BidSize})
		ob.Asks = append(ob.Asks, types.OrderbookLevel{Price: u.AskPrice, Qty: u.AskSize})
	}
	return ob, nil
}

func (c *Client) Candles(ctx context.Context, interval types.Interval, n int) ([]types.Candle, error) {
	path := "/v1/candles/days"
	if interval == types.IntervalHour {
		path = "/v1/candles/minutes/60"
	}

	var out []struct {
		Timestamp int64   `json:"timestamp"`
		Open      float64 `json:"opening_price"`
		High      float64 `json:"high_price"`
		Low       float64 `json:"low_price"`
		Close     float64 `json:"trade_price"`
		Volume    float64 `json:"candle_acc_trade_volume"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"market": c.p.Pair,
			"count":  strconv.Itoa(n),
		}).
		SetResult(&out).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("bithumb candles: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("bithumb candles: status %d: %s", resp.StatusCode(), resp.String())
	}

	cs := make([]types.Candle, 0, len(out))
	for _, k := range out {
		cs = append(cs, types.Candle{
			Ts:    k.Timestamp / 1000,
			Open:  k.Open,
			High:  k.High,
			Low:   k.Low,
			Close: k.Close,
			Vol:   k.Volume,
		})
	}
	// API returns newest first; candle consumers expect oldest first.
	sort.Slice(cs, func(i, j int) bool { return cs[i].Ts < cs[j].Ts })
	return cs, nil
}

func (c *Client) MarketBuy(ctx context.Context, quoteAmount float64) (types.OrderResult, error) {
	return c.placeOrder(ctx, url.Values{
		"market":   {c.p.Pair},
		"side":     {"bid"},
		"price":    {strconv.FormatFloat(quoteAmount, 'f', -1, 64)},
		"ord_type": {"price"},
	}, "BUY", quoteAmount)
}

func (c *Client) MarketSell(ctx context.Context, baseAmount float64) (types.OrderResult, error) {
	return c.placeOrder(ctx, url.Values{
		"market":   {c.p.Pair},
		"side":     {"ask"},
		"volume":   {strconv.FormatFloat(baseAmount, 'f', -1, 64)},
		"ord_type": {"market"},
	}, "SELL", baseAmount)
}

func (c *Client) placeOrder(ctx context.Context, params url.Values, side string, amount float64) (types.OrderResult, error) {
	if c.p.Mode == "DRY_RUN" {
		logger.Warn(ctx, "DRY_RUN: order simulated, not sent",
			"pair", c.p.Pair, "side", side, "amount", amount)
		return types.OrderResult{
			OrderID: fmt.Sprintf("dryrun-%d", time.Now().UnixNano()),
			Status:  "SIMULATED",
		}, nil
	}

	query := params.Encode()
	token, err := signToken(c.p.AccessKey, c.p.SecretKey, query)
	if err != nil {
		return types.OrderResult{}, fmt.Errorf("bithumb auth: %w", err)
	}

	body := map[string]string{}
	for k := range params {
		body[k] = params.Get(k)
	}
	payload, _ := json.Marshal(body)

	var out struct {
		UUID  string `json:"uuid"`
		State string `json:"state"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&out).
		Post("/v1/orders")
	if err != nil {
		return types.OrderResult{}, fmt.Errorf("bithumb order: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return types.OrderResult{}, fmt.Errorf("bithumb order: status %d: %s", resp.StatusCode(), resp.String())
	}

	return types.OrderResult{OrderID: out.UUID, Status: out.State}, nil
}
