package ta

import "math"

func SMA(closes []float64, n int) float64 {
	if len(closes) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(closes) - n; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(n)
}

// EMASeries computes the exponential moving average over the full series,
// seeded with the first value. alpha = 2/(n+1).
func EMASeries(vals []float64, n int) []float64 {
	if len(vals) == 0 || n <= 0 {
		return nil
	}
	alpha := 2.0 / (float64(n) + 1.0)
	out := make([]float64, len(vals))
	out[0] = vals[0]
	for i := 1; i < len(vals); i++ {
		out[i] = alpha*vals[i] + (1-alpha)*out[i-1]
	}
	return out
}

// EMA returns the latest exponential moving average value.
func EMA(closes []float64, n int) float64 {
	s := EMASeries(closes, n)
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}

func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 || period <= 0 {
		return math.NaN()
	}
	gain, loss := 0.0, 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	if loss == 0 {
		return 100.0
	}
	rs := (gain / float64(period)) / (loss / float64(period))
	return 100.0 - (100.0 / (1.0 + rs))
}

func StdDev(vals []float64, n int) float64 {
	if len(vals) < n || n <= 0 {
		return math.NaN()
	}
	m := SMA(vals, n)
	s := 0.0
	for i := len(vals) - n; i < len(vals); i++ {
		d := vals[i] - m
		s += d * d
	}
	return math.Sqrt(s / float64(n))
}

func Bollinger(closes []float64, n int, k float64) (mid, up, low float64) {
	mid = SMA(closes, n)
	sd := StdDev(closes, n)
	up = mid + k*sd
	low = mid - k*sd
	return
}

// MACD returns the latest MACD line, signal line, and histogram values.
// The line is EMA(fast) - EMA(slow); the signal is an EMA of the line.
func MACD(closes []float64, fast, slow, signal int) (line, sig, hist float64) {
	if len(closes) == 0 || fast <= 0 || slow <= 0 || signal <= 0 || fast >= slow {
		return math.NaN(), math.NaN(), math.NaN()
	}
	fastS := EMASeries(closes, fast)
	slowS := EMASeries(closes, slow)
	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = fastS[i] - slowS[i]
	}
	sigS := EMASeries(macd, signal)
	n := len(closes) - 1
	return macd[n], sigS[n], macd[n] - sigS[n]
}
