package interfaces

import (
	"context"

	"bithumb-ai-trader/internal/types"
)

// Exchange is the market-data provider and order executor for one trading
// pair. Implementations must not cache balances: Snapshot is called once per
// cycle and the result must reflect the account at call time.
type Exchange interface {
	Snapshot(ctx context.Context) (types.AccountSnapshot, error)
	Orderbook(ctx context.Context) (*types.Orderbook, error)
	Candles(ctx context.Context, interval types.Interval, n int) ([]types.Candle, error)
	// MarketBuy spends quoteAmount of the quote currency at market.
	MarketBuy(ctx context.Context, quoteAmount float64) (types.OrderResult, error)
	// MarketSell sells baseAmount of the base currency at market.
	MarketSell(ctx context.Context, baseAmount float64) (types.OrderResult, error)
}
