package decision

import (
	"context"

	"github.com/shopspring/decimal"

	"bithumb-ai-trader/internal/logger"
	"bithumb-ai-trader/internal/types"
)

// SkipBelowMinNotional is the skip reason attached when a sized candidate
// fails the minimum-notional guard.
const SkipBelowMinNotional = "below minimum notional"

// Sizer maps a validated decision plus a fresh account snapshot to an order
// intent. Money math runs through decimals so that percentage splits and the
// fee margin stay exact at quote-currency scale.
type Sizer struct {
	feeMargin   decimal.Decimal
	minNotional decimal.Decimal
}

// NewSizer creates a sizer. feeMargin is the fraction of a buy withheld to
// absorb exchange fees (e.g. 0.0005); minNotional is the smallest order value
// in quote currency that will be submitted.
func NewSizer(feeMargin, minNotional float64) *Sizer {
	return &Sizer{
		feeMargin:   decimal.NewFromFloat(feeMargin),
		minNotional: decimal.NewFromFloat(minNotional),
	}
}

// Size produces the order intent for one cycle. Hold is always a no-op. Buy
// and sell candidates below or at the minimum notional are downgraded to a
// no-op carrying a skip reason, which callers must surface as a distinct
// outcome from both an executed order and a hold.
func (s *Sizer) Size(ctx context.Context, d types.Decision, snap types.AccountSnapshot) types.OrderIntent {
	if d.Action == types.ActionHold {
		return types.OrderIntent{Kind: types.IntentNoOp}
	}

	// The validator already bounds the percentage; re-clamp anyway so a
	// hand-built decision cannot size beyond the available balance.
	pct := d.Percentage
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	frac := decimal.NewFromInt(int64(pct)).Div(decimal.NewFromInt(100))

	var amount, notional decimal.Decimal
	var kind types.IntentKind

	switch d.Action {
	case types.ActionBuy:
		kind = types.IntentBuyQuote
		quote := decimal.NewFromFloat(snap.QuoteBalance)
		amount = quote.Mul(frac).Mul(decimal.NewFromInt(1).Sub(s.feeMargin))
		notional = amount
	case types.ActionSell:
		kind = types.IntentSellBase
		base := decimal.NewFromFloat(snap.BaseBalance)
		amount = base.Mul(frac)
		notional = amount.Mul(decimal.NewFromFloat(snap.Price))
	default:
		return types.OrderIntent{Kind: types.IntentNoOp}
	}

	if notional.Cmp(s.minNotional) <= 0 {
		logger.Warn(ctx, "Order skipped: below minimum notional",
			"action", string(d.Action),
			"percentage", pct,
			"notional", notional.InexactFloat64(),
			"min_notional", s.minNotional.InexactFloat64(),
		)
		return types.OrderIntent{
			Kind:       types.IntentNoOp,
			Notional:   notional.InexactFloat64(),
			SkipReason: SkipBelowMinNotional,
		}
	}

	return types.OrderIntent{
		Kind:     kind,
		Amount:   amount.InexactFloat64(),
		Notional: notional.InexactFloat64(),
	}
}
