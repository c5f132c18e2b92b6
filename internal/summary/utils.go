package summary

import (
	"os"
	"path/filepath"
	"time"
)

func logDir() string {
	if v := os.Getenv("TRADER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func kstNow() time.Time {
	return time.Now().In(time.FixedZone("KST", 9*3600))
}

func tradeFile(t time.Time) string {
	dateStr := t.In(time.FixedZone("KST", 9*3600)).Format("2006-01-02")
	return filepath.Join(logDir(), dateStr+".txt")
}

func csvPath(t time.Time) string {
	dateStr := t.In(time.FixedZone("KST", 9*3600)).Format("2006-01-02")
	return filepath.Join(logDir(), "summary", dateStr+".csv")
}
