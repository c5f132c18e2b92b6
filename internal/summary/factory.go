package summary

import (
	"time"

	"bithumb-ai-trader/internal/interfaces"
)

var defaultSummarizer interfaces.DailySummarizer = &dailySummarizer{}

func SetDefaultSummarizer(summarizer interfaces.DailySummarizer) {
	defaultSummarizer = summarizer
}

func NewSummarizer() interfaces.DailySummarizer {
	return &dailySummarizer{}
}

func SummarizeDay(t time.Time) (string, error) {
	return defaultSummarizer.SummarizeDay(t)
}

func SummarizeYesterday() (string, error) {
	return defaultSummarizer.SummarizeYesterday()
}

func ShouldRunNow() (bool, string) {
	return defaultSummarizer.ShouldRunNow()
}
