package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bithumb-ai-trader/internal/config"
	"bithumb-ai-trader/internal/decision"
	"bithumb-ai-trader/internal/types"
)

type fakeExchange struct {
	snap      types.AccountSnapshot
	snapErr   error
	candleErr error

	buys  []float64
	sells []float64
}

func (f *fakeExchange) Snapshot(ctx context.Context) (types.AccountSnapshot, error) {
	return f.snap, f.snapErr
}

func (f *fakeExchange) Orderbook(ctx context.Context) (*types.Orderbook, error) {
	return &types.Orderbook{
		Bids: []types.OrderbookLevel{{Price: f.snap.Price - 1000, Qty: 1}},
		Asks: []types.OrderbookLevel{{Price: f.snap.Price + 1000, Qty: 1}},
	}, nil
}

func (f *fakeExchange) Candles(ctx context.Context, interval types.Interval, n int) ([]types.Candle, error) {
	if f.candleErr != nil {
		return nil, f.candleErr
	}
	cs := make([]types.Candle, n)
	for i := range cs {
		price := f.snap.Price + float64(i)
		cs[i] = types.Candle{Ts: int64(i), Open: price, High: price + 10, Low: price - 10, Close: price, Vol: 1}
	}
	return cs, nil
}

func (f *fakeExchange) MarketBuy(ctx context.Context, quoteAmount float64) (types.OrderResult, error) {
	f.buys = append(f.buys, quoteAmount)
	return types.OrderResult{OrderID: "buy-1", Status: "SIMULATED"}, nil
}

func (f *fakeExchange) MarketSell(ctx context.Context, baseAmount float64) (types.OrderResult, error) {
	f.sells = append(f.sells, baseAmount)
	return types.OrderResult{OrderID: "sell-1", Status: "SIMULATED"}, nil
}

type fakeAdvisor struct {
	payload []byte
	err     error
}

func (f *fakeAdvisor) Advise(ctx context.Context, bundle types.AdvisoryContext) ([]byte, error) {
	return f.payload, f.err
}

type fakeFearGreed struct {
	fg  *types.FearGreed
	err error
}

func (f *fakeFearGreed) Index(ctx context.Context) (*types.FearGreed, error) {
	return f.fg, f.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Mode = "DRY_RUN"
	cfg.Exchange = "BITHUMB"
	cfg.Pair = "KRW-BTC"
	cfg.BaseCurrency = "BTC"
	cfg.QuoteCurrency = "KRW"
	cfg.Candles.Daily = 30
	cfg.Candles.Hourly = 24
	cfg.Indicators.SMAWindows = []int{20}
	cfg.Indicators.EMAWindows = []int{12}
	cfg.Indicators.RSIPeriod = 14
	cfg.Indicators.BBWindow = 20
	cfg.Indicators.BBStdDev = 2.0
	cfg.Indicators.MACDFast = 12
	cfg.Indicators.MACDSlow = 26
	cfg.Indicators.MACDSignal = 9
	cfg.Order.FeeMargin = 0.0005
	cfg.Order.MinNotional = 5000
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRunCycleExecutesBuy(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())
	ex := &fakeExchange{snap: types.AccountSnapshot{QuoteBalance: 1000000, Price: 50000000}}
	adv := &fakeAdvisor{payload: []byte(`{"action":"buy","percentage":50,"reason":"momentum"}`)}

	eng := New(testConfig(t), ex, adv, Providers{})
	result, err := eng.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.OutcomeExecuted, result.Outcome)
	require.Len(t, ex.buys, 1)
	// Half the quote balance, minus the fee margin.
	assert.InDelta(t, 500000*(1-0.0005), ex.buys[0], 0.01)
	require.NotNil(t, result.Order)
	assert.Equal(t, "buy-1", result.Order.OrderID)
	assert.Empty(t, ex.sells)
}

func TestRunCycleExecutesSell(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())
	ex := &fakeExchange{snap: types.AccountSnapshot{BaseBalance: 0.02, Price: 50000000}}
	adv := &fakeAdvisor{payload: []byte(`{"action":"sell","percentage":100,"reason":"take profit"}`)}

	eng := New(testConfig(t), ex, adv, Providers{})
	result, err := eng.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.OutcomeExecuted, result.Outcome)
	require.Len(t, ex.sells, 1)
	assert.InDelta(t, 0.02, ex.sells[0], 1e-12)
}

func TestRunCycleHold(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())
	ex := &fakeExchange{snap: types.AccountSnapshot{QuoteBalance: 1000000, Price: 50000000}}
	adv := &fakeAdvisor{payload: []byte(`{"action":"hold","percentage":0,"reason":"unclear trend"}`)}

	eng := New(testConfig(t), ex, adv, Providers{})
	result, err := eng.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.OutcomeHeld, result.Outcome)
	assert.Nil(t, result.Order)
	assert.Empty(t, ex.buys)
	assert.Empty(t, ex.sells)
}

func TestRunCycleSkipsBelowMinNotional(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())
	// 100% of 4000 KRW is below the 5000 KRW minimum.
	ex := &fakeExchange{snap: types.AccountSnapshot{QuoteBalance: 4000, Price: 50000000}}
	adv := &fakeAdvisor{payload: []byte(`{"action":"buy","percentage":100,"reason":"dip"}`)}

	eng := New(testConfig(t), ex, adv, Providers{})
	result, err := eng.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.OutcomeSkipped, result.Outcome)
	assert.Equal(t, decision.SkipBelowMinNotional, result.Intent.SkipReason)
	assert.Empty(t, ex.buys, "no order may reach the exchange when skipped")
}

func TestRunCycleRejectsMalformedAdvisory(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())
	ex := &fakeExchange{snap: types.AccountSnapshot{QuoteBalance: 1000000, Price: 50000000}}
	adv := &fakeAdvisor{payload: []byte(`{"action":"yolo","percentage":500}`)}

	eng := New(testConfig(t), ex, adv, Providers{})
	_, err := eng.RunCycle(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, decision.ErrMalformedAdvisory)
	assert.Empty(t, ex.buys)
	assert.Empty(t, ex.sells)
}

func TestRunCycleAbortsOnSnapshotFailure(t *testing.T) {
	ex := &fakeExchange{snapErr: errors.New("exchange down")}
	adv := &fakeAdvisor{payload: []byte(`{"action":"buy","percentage":10,"reason":"x"}`)}

	eng := New(testConfig(t), ex, adv, Providers{})
	_, err := eng.RunCycle(context.Background())
	require.Error(t, err)
}

func TestRunCycleAbortsOnCandleFailure(t *testing.T) {
	ex := &fakeExchange{
		snap:      types.AccountSnapshot{QuoteBalance: 1000000, Price: 50000000},
		candleErr: errors.New("candles unavailable"),
	}
	adv := &fakeAdvisor{payload: []byte(`{"action":"buy","percentage":10,"reason":"x"}`)}

	eng := New(testConfig(t), ex, adv, Providers{})
	_, err := eng.RunCycle(context.Background())
	require.Error(t, err)
}

func TestRunCycleDegradesWithoutFearGreed(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())
	ex := &fakeExchange{snap: types.AccountSnapshot{QuoteBalance: 1000000, Price: 50000000}}
	adv := &fakeAdvisor{payload: []byte(`{"action":"hold","percentage":0,"reason":"quiet"}`)}
	prov := Providers{FearGreed: &fakeFearGreed{err: errors.New("api down")}}

	eng := New(testConfig(t), ex, adv, prov)
	result, err := eng.RunCycle(context.Background())

	require.NoError(t, err, "optional context failure must not abort the cycle")
	assert.Contains(t, result.MissingCtx, "fear_greed")
}

func TestCalcIndicatorsDropsShortWindows(t *testing.T) {
	cfg := testConfig(t)
	cfg.Indicators.SMAWindows = []int{5, 500}
	eng := New(cfg, &fakeExchange{}, &fakeAdvisor{}, Providers{})

	cs := make([]types.Candle, 30)
	for i := range cs {
		cs[i] = types.Candle{Close: 100 + float64(i)}
	}
	inds := eng.calcIndicators(cs)

	assert.Contains(t, inds.SMA, 5)
	assert.NotContains(t, inds.SMA, 500, "windows longer than the series are dropped")
	assert.False(t, inds.RSI < 0 || inds.RSI > 100)
}
