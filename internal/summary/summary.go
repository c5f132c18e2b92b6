package summary

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

type orderLine struct {
	Time, Pair, Side, OrderID, Status, Reason string
	Amount                                    float64
	Notional                                  float64
	Price                                     float64
}

// aggRow holds aggregated order statistics for one pair over one day.
// Buy amounts are quote currency, sell amounts are base currency.
type aggRow struct {
	Pair          string
	BuyCount      int
	QuoteSpent    float64
	BaseAcquired  float64 // estimated from fill price
	SellCount     int
	BaseSold      float64
	QuoteReceived float64
}

type dailySummarizer struct{}

// SummarizeDay reads the day's order log and writes a per-pair CSV summary.
// Returns an empty path when no orders were logged that day.
func (s *dailySummarizer) SummarizeDay(t time.Time) (string, error) {
	inPath := tradeFile(t)
	if _, err := os.Stat(inPath); err != nil {
		return "", nil
	}
	f, err := os.Open(inPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	aggs := map[string]*aggRow{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ol orderLine
		if err := json.Unmarshal(sc.Bytes(), &ol); err != nil {
			continue
		}
		row := aggs[ol.Pair]
		if row == nil {
			row = &aggRow{Pair: ol.Pair}
			aggs[ol.Pair] = row
		}
		switch ol.Side {
		case "BUY":
			row.BuyCount++
			row.QuoteSpent += ol.Amount
			if ol.Price > 0 {
				row.BaseAcquired += ol.Amount / ol.Price
			}
		case "SELL":
			row.SellCount++
			row.BaseSold += ol.Amount
			row.QuoteReceived += ol.Amount * ol.Price
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if len(aggs) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := csvPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	headers := []string{"pair", "buy_count", "quote_spent", "est_base_acquired", "sell_count", "base_sold", "quote_received", "net_quote_flow"}
	if err := w.Write(headers); err != nil {
		return "", err
	}

	var totalSpent, totalReceived float64
	for _, k := range keys {
		r := aggs[k]
		net := r.QuoteReceived - r.QuoteSpent
		rec := []string{
			r.Pair,
			fmt.Sprintf("%d", r.BuyCount),
			fmt.Sprintf("%.2f", r.QuoteSpent),
			fmt.Sprintf("%.8f", r.BaseAcquired),
			fmt.Sprintf("%d", r.SellCount),
			fmt.Sprintf("%.8f", r.BaseSold),
			fmt.Sprintf("%.2f", r.QuoteReceived),
			fmt.Sprintf("%.2f", net),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
		totalSpent += r.QuoteSpent
		totalReceived += r.QuoteReceived
	}
	_ = w.Write([]string{"TOTAL", "", fmt.Sprintf("%.2f", totalSpent), "", "", "", fmt.Sprintf("%.2f", totalReceived), fmt.Sprintf("%.2f", totalReceived-totalSpent)})
	return outPath, nil
}

func (s *dailySummarizer) SummarizeYesterday() (string, error) {
	return s.SummarizeDay(kstNow().AddDate(0, 0, -1))
}

// ShouldRunNow reports whether the previous KST day still lacks a summary.
// The check waits a few minutes past midnight so the last cycle of the old
// day has certainly been flushed.
func (s *dailySummarizer) ShouldRunNow() (bool, string) {
	now := kstNow()
	yesterday := now.AddDate(0, 0, -1)
	outPath := csvPath(yesterday)

	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 10, 0, 0, now.Location())
	if now.Before(cutoff) {
		return false, outPath
	}
	if _, err := os.Stat(outPath); err == nil {
		return false, outPath
	}
	if _, err := os.Stat(tradeFile(yesterday)); err != nil {
		return false, outPath
	}
	return true, outPath
}
