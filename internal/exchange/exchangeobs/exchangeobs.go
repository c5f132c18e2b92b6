package exchangeobs

import (
	"context"

	"bithumb-ai-trader/internal/interfaces"
	"bithumb-ai-trader/internal/logger"
	"bithumb-ai-trader/internal/trace"
	"bithumb-ai-trader/internal/types"
)

// observableExchange wraps an Exchange with observability (logging & tracing)
type observableExchange struct {
	ex interfaces.Exchange
}

// Compile-time interface check
var _ interfaces.Exchange = (*observableExchange)(nil)

// Wrap wraps an exchange with observability middleware
func Wrap(ex interfaces.Exchange) interfaces.Exchange {
	return &observableExchange{
		ex: ex,
	}
}

// Snapshot fetches balances and price with observability
func (oe *observableExchange) Snapshot(ctx context.Context) (types.AccountSnapshot, error) {
	ctx, span := trace.StartSpan(ctx, "exchange.Snapshot")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching account snapshot")

	snap, err := oe.ex.Snapshot(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch account snapshot", err)
		return types.AccountSnapshot{}, err
	}

	logger.DebugSkip(ctx, 1, "Account snapshot fetched",
		"quote_balance", snap.QuoteBalance,
		"base_balance", snap.BaseBalance,
		"price", snap.Price,
	)
	return snap, nil
}

// Orderbook fetches the order book with observability
func (oe *observableExchange) Orderbook(ctx context.Context) (*types.Orderbook, error) {
	ctx, span := trace.StartSpan(ctx, "exchange.Orderbook")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching orderbook")

	ob, err := oe.ex.Orderbook(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch orderbook", err)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Orderbook fetched", "bids", len(ob.Bids), "asks", len(ob.Asks))
	return ob, nil
}

// Candles fetches candles with observability
func (oe *observableExchange) Candles(ctx context.Context, interval types.Interval, n int) ([]types.Candle, error) {
	ctx, span := trace.StartSpan(ctx, "exchange.Candles")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching candles", "interval", interval, "count", n)

	candles, err := oe.ex.Candles(ctx, interval, n)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch candles", err, "interval", interval, "count", n)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Candles fetched", "interval", interval, "count", len(candles))
	return candles, nil
}

// MarketBuy places a market buy with observability
func (oe *observableExchange) MarketBuy(ctx context.Context, quoteAmount float64) (types.OrderResult, error) {
	ctx, span := trace.StartSpan(ctx, "exchange.MarketBuy")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Placing market buy", "quote_amount", quoteAmount)

	res, err := oe.ex.MarketBuy(ctx, quoteAmount)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to place market buy", err, "quote_amount", quoteAmount)
		return types.OrderResult{}, err
	}

	logger.InfoSkip(ctx, 1, "Market buy placed",
		"quote_amount", quoteAmount,
		"order_id", res.OrderID,
		"status", res.Status,
	)
	return res, nil
}

// MarketSell places a market sell with observability
func (oe *observableExchange) MarketSell(ctx context.Context, baseAmount float64) (types.OrderResult, error) {
	ctx, span := trace.StartSpan(ctx, "exchange.MarketSell")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Placing market sell", "base_amount", baseAmount)

	res, err := oe.ex.MarketSell(ctx, baseAmount)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to place market sell", err, "base_amount", baseAmount)
		return types.OrderResult{}, err
	}

	logger.InfoSkip(ctx, 1, "Market sell placed",
		"base_amount", baseAmount,
		"order_id", res.OrderID,
		"status", res.Status,
	)
	return res, nil
}
