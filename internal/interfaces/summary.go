package interfaces

import "time"

// DailySummarizer defines the interface for daily trade summarization.
// Implementations should parse trade logs and generate CSV summaries.
type DailySummarizer interface {
	// SummarizeDay generates a CSV summary for a specific date.
	// Reads the trade log file, aggregates orders by pair, and writes a CSV report.
	SummarizeDay(t time.Time) (csvPath string, err error)

	// SummarizeYesterday generates a summary for the previous KST trading day.
	SummarizeYesterday() (csvPath string, err error)

	// ShouldRunNow reports whether the previous day's summary is due,
	// i.e. a new KST day has started and no summary file exists yet.
	ShouldRunNow() (shouldRun bool, csvPath string)
}
