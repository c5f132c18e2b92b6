package types

// Interval selects a candle timeframe.
type Interval string

const (
	IntervalDay  Interval = "day"
	IntervalHour Interval = "hour"
)

type Candle struct {
	Ts                          int64
	Open, High, Low, Close, Vol float64
}

// Indicators holds the latest values of the enrichment set computed over a
// candle series.
type Indicators struct {
	SMA map[int]float64 `json:"sma"`
	EMA map[int]float64 `json:"ema"`
	RSI float64         `json:"rsi"`
	BB  struct {
		Middle, Upper, Lower float64
	} `json:"bb"`
	MACD struct {
		Line, Signal, Hist float64
	} `json:"macd"`
}

type OrderbookLevel struct {
	Price float64 `json:"price"`
	Qty   float64 `json:"qty"`
}

type Orderbook struct {
	Ts   int64            `json:"ts"`
	Bids []OrderbookLevel `json:"bids"`
	Asks []OrderbookLevel `json:"asks"`
}

// FearGreed is the crowd-sentiment index reading, 0 (extreme fear) to 100
// (extreme greed).
type FearGreed struct {
	Value          int    `json:"value"`
	Classification string `json:"classification"`
	Ts             int64  `json:"ts"`
}

type NewsHeadline struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at,omitempty"`
}

// ChartSnapshot is a rendered chart image for vision-capable advisors.
type ChartSnapshot struct {
	PNGBase64  string `json:"png_base64"`
	CapturedAt int64  `json:"captured_at"`
}

// AdvisoryContext is the immutable input bundle handed to the advisor for one
// cycle. Optional fields are nil/empty when their provider failed; Missing
// names those providers so the absence is visible downstream.
type AdvisoryContext struct {
	Pair       string          `json:"pair"`
	Snapshot   AccountSnapshot `json:"snapshot"`
	Orderbook  *Orderbook      `json:"orderbook,omitempty"`
	Daily      []Candle        `json:"daily_candles"`
	Hourly     []Candle        `json:"hourly_candles"`
	DailyInd   Indicators      `json:"daily_indicators"`
	HourlyInd  Indicators      `json:"hourly_indicators"`
	FearGreed  *FearGreed      `json:"fear_greed,omitempty"`
	Headlines  []NewsHeadline  `json:"headlines,omitempty"`
	Transcript string          `json:"transcript,omitempty"`
	Chart      *ChartSnapshot  `json:"-"`
	Missing    []string        `json:"missing_context,omitempty"`
}
