package tradelog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var mu sync.Mutex

// kst matches the exchange's settlement timezone so daily files roll over
// with the Bithumb trading day.
var kst = time.FixedZone("KST", 9*3600)

// OrderEntry records an order that was actually submitted (or simulated).
type OrderEntry struct {
	Time, Pair, Side, OrderID, Status, Reason string
	Amount                                    float64
	Notional                                  float64
	Price                                     float64
	Extra                                     map[string]any `json:"extra,omitempty"`
}

// DecisionEntry records every advisory verdict, including holds and skips,
// so the full decision history survives process restarts.
type DecisionEntry struct {
	Time, Pair, Action, Reason string
	Percentage                 int
	Price                      float64
	Outcome                    string
	SkipReason                 string             `json:",omitempty"`
	Indicators                 map[string]float64 `json:",omitempty"`
	MissingContext             []string           `json:",omitempty"`
}

func logDir() string {
	if v := os.Getenv("TRADER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func dailyFilepath(t time.Time) string {
	d := t.In(kst).Format("2006-01-02")
	return filepath.Join(logDir(), d+".txt")
}

func decisionsFilepath(t time.Time) string {
	d := t.In(kst).Format("2006-01-02")
	return filepath.Join(logDir(), "decisions", d+".txt")
}

func AppendOrder(e OrderEntry) error {
	mu.Lock()
	defer mu.Unlock()
	now := time.Now().In(kst)
	e.Time = now.Format("2006-01-02 15:04:05")
	return appendJSONL(dailyFilepath(now), e)
}

func AppendDecision(e DecisionEntry) error {
	mu.Lock()
	defer mu.Unlock()
	now := time.Now().In(kst)
	e.Time = now.Format("2006-01-02 15:04:05")
	return appendJSONL(decisionsFilepath(now), e)
}

func appendJSONL(p string, v any) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, _ := json.Marshal(v)
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips log files older than retentionDays and removes the
// originals. A zero or negative retention disables compression.
func CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	root := logDir()
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(p) != ".txt" {
			return nil
		}
		info, er := os.Stat(p)
		if er != nil {
			return nil
		}
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		if !info.ModTime().Before(cutoff) {
			return nil
		}

		gz := p + ".gz"
		if _, e2 := os.Stat(gz); e2 == nil {
			_ = os.Remove(p)
			return nil
		}

		in, e3 := os.Open(p)
		if e3 != nil {
			return nil
		}
		defer in.Close()

		out, e4 := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if e4 != nil {
			return nil
		}
		gw := gzip.NewWriter(out)
		if _, e5 := io.Copy(gw, in); e5 == nil {
			_ = gw.Close()
			_ = out.Close()
			_ = os.Remove(p)
		} else {
			_ = gw.Close()
			_ = out.Close()
		}
		return nil
	})
}
