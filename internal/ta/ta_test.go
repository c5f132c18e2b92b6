package ta

import (
	"math"
	"testing"
)

func TestSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}

	got := SMA(closes, 5)
	if got != 3.0 {
		t.Errorf("Expected SMA 3.0, got %f", got)
	}

	got = SMA(closes, 2)
	if got != 4.5 {
		t.Errorf("Expected SMA 4.5 over last two values, got %f", got)
	}

	if !math.IsNaN(SMA(closes, 6)) {
		t.Error("Expected NaN when window exceeds series length")
	}
	if !math.IsNaN(SMA(closes, 0)) {
		t.Error("Expected NaN for zero window")
	}
}

func TestEMA(t *testing.T) {
	// Constant series: EMA must equal the constant.
	closes := []float64{10, 10, 10, 10, 10}
	if got := EMA(closes, 3); got != 10.0 {
		t.Errorf("Expected EMA 10.0 on constant series, got %f", got)
	}

	// Rising series: EMA lags below the last value but above the SMA seed.
	closes = []float64{1, 2, 3, 4, 5}
	got := EMA(closes, 3)
	if got <= closes[0] || got >= closes[len(closes)-1] {
		t.Errorf("Expected EMA between first and last value, got %f", got)
	}

	if !math.IsNaN(EMA(nil, 3)) {
		t.Error("Expected NaN for empty series")
	}
}

func TestRSI(t *testing.T) {
	// Monotonically rising series has no losses: RSI pegs at 100.
	up := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	if got := RSI(up, 14); got != 100.0 {
		t.Errorf("Expected RSI 100 on all-gain series, got %f", got)
	}

	// Monotonically falling series: RSI at 0.
	down := []float64{15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	if got := RSI(down, 14); got != 0.0 {
		t.Errorf("Expected RSI 0 on all-loss series, got %f", got)
	}

	if !math.IsNaN(RSI(up, 15)) {
		t.Error("Expected NaN when period+1 exceeds series length")
	}
}

func TestBollinger(t *testing.T) {
	closes := []float64{2, 4, 2, 4, 2, 4, 2, 4, 2, 4}
	mid, up, low := Bollinger(closes, 10, 2.0)

	if mid != 3.0 {
		t.Errorf("Expected middle band 3.0, got %f", mid)
	}
	if up <= mid || low >= mid {
		t.Errorf("Expected bands to straddle the middle: up=%f mid=%f low=%f", up, mid, low)
	}
	if math.Abs((up-mid)-(mid-low)) > 1e-9 {
		t.Errorf("Expected symmetric bands, got up-mid=%f mid-low=%f", up-mid, mid-low)
	}
}

func TestMACD(t *testing.T) {
	// Uptrend: fast EMA above slow EMA, so the MACD line is positive.
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	line, sig, hist := MACD(closes, 12, 26, 9)
	if line <= 0 {
		t.Errorf("Expected positive MACD line in uptrend, got %f", line)
	}
	if math.Abs(hist-(line-sig)) > 1e-9 {
		t.Errorf("Expected hist = line - signal, got %f vs %f", hist, line-sig)
	}

	// Invalid configuration yields NaN.
	line, _, _ = MACD(closes, 26, 12, 9)
	if !math.IsNaN(line) {
		t.Error("Expected NaN when fast >= slow")
	}
}

func TestStdDev(t *testing.T) {
	if got := StdDev([]float64{5, 5, 5, 5}, 4); got != 0.0 {
		t.Errorf("Expected zero stddev on constant series, got %f", got)
	}
	if got := StdDev([]float64{2, 4, 2, 4}, 4); got != 1.0 {
		t.Errorf("Expected stddev 1.0, got %f", got)
	}
}
