package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"bithumb-ai-trader/internal/config"
	"bithumb-ai-trader/internal/decision"
	"bithumb-ai-trader/internal/interfaces"
	"bithumb-ai-trader/internal/logger"
	"bithumb-ai-trader/internal/ta"
	"bithumb-ai-trader/internal/tradelog"
	"bithumb-ai-trader/internal/types"
)

// Providers groups the optional context sources. Any entry may be nil when
// the corresponding source is disabled in config.
type Providers struct {
	FearGreed  interfaces.FearGreedProvider
	News       interfaces.NewsProvider
	Chart      interfaces.ChartProvider
	Transcript interfaces.TranscriptProvider
}

type Engine struct {
	cfg   *config.Config
	ex    interfaces.Exchange
	adv   interfaces.Advisor
	sizer *decision.Sizer
	prov  Providers
}

var _ interfaces.Engine = (*Engine)(nil)

func New(cfg *config.Config, ex interfaces.Exchange, adv interfaces.Advisor, prov Providers) *Engine {
	return &Engine{
		cfg:   cfg,
		ex:    ex,
		adv:   adv,
		sizer: decision.NewSizer(cfg.Order.FeeMargin, cfg.Order.MinNotional),
		prov:  prov,
	}
}

// RunCycle executes one full decision cycle: gather state, ask the advisor,
// validate, size, and execute. Balances are read fresh at the start of every
// cycle; nothing from a previous cycle is reused.
func (e *Engine) RunCycle(ctx context.Context) (*types.CycleResult, error) {
	pair := e.cfg.Pair
	logger.Debug(ctx, "Starting decision cycle", "pair", pair)

	snap, err := e.ex.Snapshot(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch account snapshot", err, "pair", pair)
		return nil, fmt.Errorf("account snapshot: %w", err)
	}
	logger.Debug(ctx, "Account snapshot fetched",
		"pair", pair,
		"quote_balance", snap.QuoteBalance,
		"base_balance", snap.BaseBalance,
		"price", snap.Price,
	)

	bundle, err := e.gatherContext(ctx, pair, snap)
	if err != nil {
		return nil, err
	}

	payload, err := e.adv.Advise(ctx, *bundle)
	if err != nil {
		logger.ErrorWithErr(ctx, "Advisor call failed", err, "pair", pair)
		return nil, fmt.Errorf("advisor: %w", err)
	}

	d, err := decision.Parse(ctx, payload)
	if err != nil {
		if errors.Is(err, decision.ErrMalformedAdvisory) {
			logger.Error(ctx, "Rejected malformed advisory, no trade this cycle",
				"pair", pair, "payload", string(payload), "error", err.Error())
		}
		return nil, fmt.Errorf("advisory validation: %w", err)
	}

	logger.Decision(ctx, pair, string(d.Action), d.Percentage, d.Reason)

	intent := e.sizer.Size(ctx, d, snap)

	result := &types.CycleResult{
		Pair:       pair,
		Decision:   d,
		Snapshot:   snap,
		Intent:     intent,
		MissingCtx: bundle.Missing,
		Time:       time.Now().Unix(),
	}

	switch intent.Kind {
	case types.IntentNoOp:
		if d.Action == types.ActionHold {
			result.Outcome = types.OutcomeHeld
		} else {
			result.Outcome = types.OutcomeSkipped
		}
	case types.IntentBuyQuote:
		order, err := e.ex.MarketBuy(ctx, intent.Amount)
		if err != nil {
			logger.ErrorWithErr(ctx, "Market buy failed", err, "pair", pair, "amount", intent.Amount)
			return nil, fmt.Errorf("market buy: %w", err)
		}
		result.Outcome = types.OutcomeExecuted
		result.Order = &order
		logger.Order(ctx, pair, "BUY", intent.Amount, order.OrderID)
		_ = tradelog.AppendOrder(tradelog.OrderEntry{
			Pair:     pair,
			Side:     "BUY",
			Amount:   intent.Amount,
			Notional: intent.Notional,
			Price:    snap.Price,
			OrderID:  order.OrderID,
			Status:   order.Status,
			Reason:   d.Reason,
		})
	case types.IntentSellBase:
		order, err := e.ex.MarketSell(ctx, intent.Amount)
		if err != nil {
			logger.ErrorWithErr(ctx, "Market sell failed", err, "pair", pair, "amount", intent.Amount)
			return nil, fmt.Errorf("market sell: %w", err)
		}
		result.Outcome = types.OutcomeExecuted
		result.Order = &order
		logger.Order(ctx, pair, "SELL", intent.Amount, order.OrderID)
		_ = tradelog.AppendOrder(tradelog.OrderEntry{
			Pair:     pair,
			Side:     "SELL",
			Amount:   intent.Amount,
			Notional: intent.Notional,
			Price:    snap.Price,
			OrderID:  order.OrderID,
			Status:   order.Status,
			Reason:   d.Reason,
		})
	}

	_ = tradelog.AppendDecision(tradelog.DecisionEntry{
		Pair:       pair,
		Action:     string(d.Action),
		Percentage: d.Percentage,
		Reason:     d.Reason,
		Price:      snap.Price,
		Outcome:    string(result.Outcome),
		SkipReason: intent.SkipReason,
		Indicators: map[string]float64{
			"RSI_H":      bundle.HourlyInd.RSI,
			"BB_MID_D":   bundle.DailyInd.BB.Middle,
			"BB_UP_D":    bundle.DailyInd.BB.Upper,
			"BB_LOW_D":   bundle.DailyInd.BB.Lower,
			"MACD_D":     bundle.DailyInd.MACD.Line,
			"MACD_SIG_D": bundle.DailyInd.MACD.Signal,
		},
		MissingContext: bundle.Missing,
	})

	return result, nil
}

// gatherContext assembles the advisory bundle. Candles and the orderbook are
// mandatory; the remaining sources degrade gracefully and are recorded in
// Missing instead of failing the cycle.
func (e *Engine) gatherContext(ctx context.Context, pair string, snap types.AccountSnapshot) (*types.AdvisoryContext, error) {
	daily, err := e.ex.Candles(ctx, types.IntervalDay, e.cfg.Candles.Daily)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch daily candles", err, "pair", pair)
		return nil, fmt.Errorf("daily candles: %w", err)
	}
	if len(daily) < e.cfg.Indicators.BBWindow {
		err := errors.New("not enough daily candles")
		logger.Error(ctx, "Insufficient candle data", "pair", pair,
			"received", len(daily), "required", e.cfg.Indicators.BBWindow)
		return nil, err
	}

	hourly, err := e.ex.Candles(ctx, types.IntervalHour, e.cfg.Candles.Hourly)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch hourly candles", err, "pair", pair)
		return nil, fmt.Errorf("hourly candles: %w", err)
	}
	if len(hourly) < e.cfg.Indicators.RSIPeriod+1 {
		err := errors.New("not enough hourly candles")
		logger.Error(ctx, "Insufficient candle data", "pair", pair,
			"received", len(hourly), "required", e.cfg.Indicators.RSIPeriod+1)
		return nil, err
	}

	ob, err := e.ex.Orderbook(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch orderbook", err, "pair", pair)
		return nil, fmt.Errorf("orderbook: %w", err)
	}

	bundle := &types.AdvisoryContext{
		Pair:      pair,
		Snapshot:  snap,
		Orderbook: ob,
		Daily:     daily,
		Hourly:    hourly,
		DailyInd:  e.calcIndicators(daily),
		HourlyInd: e.calcIndicators(hourly),
	}

	if e.prov.FearGreed != nil {
		fg, err := e.prov.FearGreed.Index(ctx)
		if err != nil {
			logger.Warn(ctx, "Fear & Greed unavailable, continuing without it", "error", err.Error())
			bundle.Missing = append(bundle.Missing, "fear_greed")
		} else {
			bundle.FearGreed = fg
		}
	}

	if e.prov.News != nil {
		headlines, err := e.prov.News.Headlines(ctx, e.cfg.Context.News.MaxHeadlines)
		if err != nil {
			logger.Warn(ctx, "News unavailable, continuing without it", "error", err.Error())
			bundle.Missing = append(bundle.Missing, "news")
		} else {
			bundle.Headlines = headlines
		}
	}

	if e.prov.Transcript != nil {
		text, err := e.prov.Transcript.Transcript(ctx)
		if err != nil {
			logger.Warn(ctx, "Transcript unavailable, continuing without it", "error", err.Error())
			bundle.Missing = append(bundle.Missing, "transcript")
		} else {
			bundle.Transcript = text
		}
	}

	if e.prov.Chart != nil {
		cs, err := e.prov.Chart.Snapshot(ctx)
		if err != nil {
			logger.Warn(ctx, "Chart unavailable, continuing without it", "error", err.Error())
			bundle.Missing = append(bundle.Missing, "chart")
		} else {
			bundle.Chart = cs
		}
	}

	return bundle, nil
}

// calcIndicators computes the latest indicator values over a candle series.
// Windows longer than the series yield NaN; those are dropped or zeroed so
// the bundle stays marshalable.
func (e *Engine) calcIndicators(cs []types.Candle) types.Indicators {
	cl := make([]float64, len(cs))
	for i, c := range cs {
		cl[i] = c.Close
	}
	inds := types.Indicators{SMA: map[int]float64{}, EMA: map[int]float64{}}
	for _, w := range e.cfg.Indicators.SMAWindows {
		if v := ta.SMA(cl, w); !math.IsNaN(v) {
			inds.SMA[w] = v
		}
	}
	for _, w := range e.cfg.Indicators.EMAWindows {
		if v := ta.EMA(cl, w); !math.IsNaN(v) {
			inds.EMA[w] = v
		}
	}
	inds.RSI = finite(ta.RSI(cl, e.cfg.Indicators.RSIPeriod))
	m, u, lo := ta.Bollinger(cl, e.cfg.Indicators.BBWindow, e.cfg.Indicators.BBStdDev)
	inds.BB.Middle, inds.BB.Upper, inds.BB.Lower = finite(m), finite(u), finite(lo)
	line, sig, hist := ta.MACD(cl, e.cfg.Indicators.MACDFast, e.cfg.Indicators.MACDSlow, e.cfg.Indicators.MACDSignal)
	inds.MACD.Line, inds.MACD.Signal, inds.MACD.Hist = finite(line), finite(sig), finite(hist)
	return inds
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
