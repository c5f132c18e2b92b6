package binance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"

	"bithumb-ai-trader/internal/interfaces"
	"bithumb-ai-trader/internal/logger"
	"bithumb-ai-trader/internal/types"
)

type Params struct {
	Mode      string // DRY_RUN or LIVE
	APIKey    string
	SecretKey string
	Base      string // e.g. BTC
	Quote     string // e.g. USDT
	Testnet   bool
}

// Client implements the Exchange interface against Binance spot. Market buys
// use quote-order-quantity so the sized quote amount maps directly to the
// order, matching the buy-by-quote contract of the sizer.
type Client struct {
	p      Params
	symbol string
	client *binance.Client
}

var _ interfaces.Exchange = (*Client)(nil)

func New(p Params) *Client {
	if p.Testnet {
		binance.UseTestnet = true
	}
	return &Client{
		p:      p,
		symbol: p.Base + p.Quote,
		client: binance.NewClient(p.APIKey, p.SecretKey),
	}
}

func (c *Client) Snapshot(ctx context.Context) (types.AccountSnapshot, error) {
	prices, err := c.client.NewListPricesService().Symbol(c.symbol).Do(ctx)
	if err != nil {
		return types.AccountSnapshot{}, fmt.Errorf("binance price: %w", err)
	}
	if len(prices) == 0 {
		return types.AccountSnapshot{}, fmt.Errorf("binance price: no data for %s", c.symbol)
	}
	price, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil {
		return types.AccountSnapshot{}, fmt.Errorf("binance price: parse %q: %w", prices[0].Price, err)
	}
	if price <= 0 {
		return types.AccountSnapshot{}, fmt.Errorf("binance price: non-positive price %v", price)
	}

	acct, err := c.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return types.AccountSnapshot{}, fmt.Errorf("binance account: %w", err)
	}

	snap := types.AccountSnapshot{Price: price}
	for _, b := range acct.Balances {
		free, err := strconv.ParseFloat(b.Free, 64)
		if err != nil {
			continue
		}
		switch b.Asset {
		case c.p.Quote:
			snap.QuoteBalance = free
		case c.p.Base:
			snap.BaseBalance = free
		}
	}
	return snap, nil
}

func (c *Client) Orderbook(ctx context.Context) (*types.Orderbook, error) {
	depth, err := c.client.NewDepthService().Symbol(c.symbol).Limit(20).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance depth: %w", err)
	}

	ob := &types.Orderbook{Ts: time.Now().UnixMilli()}
	for _, b := range depth.Bids {
		p, qty, err := parseLevel(b.Price, b.Quantity)
		if err != nil {
			return nil, fmt.Errorf("binance depth: %w", err)
		}
		ob.Bids = append(ob.Bids, types.OrderbookLevel{Price: p, Qty: qty})
	}
	for _, a := range depth.Asks {
		p, qty, err := parseLevel(a.Price, a.Quantity)
		if err != nil {
			return nil, fmt.Errorf("binance depth: %w", err)
		}
		ob.Asks = append(ob.Asks, types.OrderbookLevel{Price: p, Qty: qty})
	}
	return ob, nil
}

func parseLevel(price, qty string) (float64, float64, error) {
	p, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse price %q: %w", price, err)
	}
	q, err := strconv.ParseFloat(qty, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse qty %q: %w", qty, err)
	}
	return p, q, nil
}

func (c *Client) Candles(ctx context.Context, interval types.Interval, n int) ([]types.Candle, error) {
	iv := "1d"
	if interval == types.IntervalHour {
		iv = "1h"
	}

	klines, err := c.client.NewKlinesService().
		Symbol(c.symbol).
		Interval(iv).
		Limit(n).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance klines: %w", err)
	}

	cs := make([]types.Candle, 0, len(klines))
	for _, k := range klines {
		open, err1 := strconv.ParseFloat(k.Open, 64)
		high, err2 := strconv.ParseFloat(k.High, 64)
		low, err3 := strconv.ParseFloat(k.Low, 64)
		cl, err4 := strconv.ParseFloat(k.Close, 64)
		vol, err5 := strconv.ParseFloat(k.Volume, 64)
		for _, e := range []error{err1, err2, err3, err4, err5} {
			if e != nil {
				return nil, fmt.Errorf("binance klines: parse: %w", e)
			}
		}
		cs = append(cs, types.Candle{
			Ts:    k.OpenTime / 1000,
			Open:  open,
			High:  high,
			Low:   low,
			Close: cl,
			Vol:   vol,
		})
	}
	return cs, nil
}

func (c *Client) MarketBuy(ctx context.Context, quoteAmount float64) (types.OrderResult, error) {
	if c.p.Mode == "DRY_RUN" {
		return c.simulated(ctx, "BUY", quoteAmount), nil
	}

	res, err := c.client.NewCreateOrderService().
		Symbol(c.symbol).
		Side(binance.SideTypeBuy).
		Type(binance.OrderTypeMarket).
		QuoteOrderQty(strconv.FormatFloat(quoteAmount, 'f', -1, 64)).
		Do(ctx)
	if err != nil {
		return types.OrderResult{}, fmt.Errorf("binance buy: %w", err)
	}
	return types.OrderResult{
		OrderID: strconv.FormatInt(res.OrderID, 10),
		Status:  string(res.Status),
	}, nil
}

func (c *Client) MarketSell(ctx context.Context, baseAmount float64) (types.OrderResult, error) {
	if c.p.Mode == "DRY_RUN" {
		return c.simulated(ctx, "SELL", baseAmount), nil
	}

	res, err := c.client.NewCreateOrderService().
		Symbol(c.symbol).
		Side(binance.SideTypeSell).
		Type(binance.OrderTypeMarket).
		Quantity(strconv.FormatFloat(baseAmount, 'f', -1, 64)).
		Do(ctx)
	if err != nil {
		return types.OrderResult{}, fmt.Errorf("binance sell: %w", err)
	}
	return types.OrderResult{
		OrderID: strconv.FormatInt(res.OrderID, 10),
		Status:  string(res.Status),
	}, nil
}

func (c *Client) simulated(ctx context.Context, side string, amount float64) types.OrderResult {
	logger.Warn(ctx, "DRY_RUN: order simulated, not sent",
		"symbol", c.symbol, "side", side, "amount", amount)
	return types.OrderResult{
		OrderID: fmt.Sprintf("dryrun-%d", time.Now().UnixNano()),
		Status:  "SIMULATED",
	}
}
