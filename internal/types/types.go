package types

// Action is the closed set of moves the advisor may request.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// Valid reports whether a is one of the three known actions.
func (a Action) Valid() bool {
	return a == ActionBuy || a == ActionSell || a == ActionHold
}

// Decision is a validated advisory response. Percentage is the share of the
// available balance to commit: quote balance for buy, base balance for sell.
// Reason is carried for the audit trail only and never drives control flow.
type Decision struct {
	Action     Action `json:"action"`
	Percentage int    `json:"percentage"`
	Reason     string `json:"reason"`
}

// AccountSnapshot is the exchange account state at the start of a cycle.
// It is read fresh every cycle and never cached across cycles.
type AccountSnapshot struct {
	QuoteBalance float64 `json:"quote_balance"`
	BaseBalance  float64 `json:"base_balance"`
	Price        float64 `json:"price"`
}

// IntentKind discriminates the sized order intent.
type IntentKind string

const (
	IntentNoOp     IntentKind = "NOOP"
	IntentBuyQuote IntentKind = "BUY_QUOTE"
	IntentSellBase IntentKind = "SELL_BASE"
)

// OrderIntent is the sized instruction derived from a Decision and an
// AccountSnapshot. Amount is quote currency for buys and base currency for
// sells; Notional is always quote-denominated. SkipReason is set when the
// sizer downgraded a non-hold decision to NoOp.
type OrderIntent struct {
	Kind       IntentKind `json:"kind"`
	Amount     float64    `json:"amount"`
	Notional   float64    `json:"notional"`
	SkipReason string     `json:"skip_reason,omitempty"`
}

// Outcome is the terminal state of a decision cycle.
type Outcome string

const (
	OutcomeExecuted Outcome = "EXECUTED"
	OutcomeSkipped  Outcome = "SKIPPED"
	OutcomeHeld     Outcome = "HELD"
)

// OrderResult is the exchange's acknowledgement of a placed order.
type OrderResult struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// CycleResult is the audit record of one completed decision cycle.
type CycleResult struct {
	Pair       string       `json:"pair"`
	Decision   Decision     `json:"decision"`
	Snapshot   AccountSnapshot `json:"snapshot"`
	Intent     OrderIntent  `json:"intent"`
	Outcome    Outcome      `json:"outcome"`
	Order      *OrderResult `json:"order,omitempty"`
	MissingCtx []string     `json:"missing_context,omitempty"`
	Time       int64        `json:"time"`
}
