package summaryobs

import (
	"context"
	"time"

	"bithumb-ai-trader/internal/interfaces"
	"bithumb-ai-trader/internal/logger"
	"bithumb-ai-trader/internal/trace"
)

type observableSummarizer struct {
	summarizer interfaces.DailySummarizer
}

var _ interfaces.DailySummarizer = (*observableSummarizer)(nil)

func Wrap(summarizer interfaces.DailySummarizer) interfaces.DailySummarizer {
	return &observableSummarizer{
		summarizer: summarizer,
	}
}

func (s *observableSummarizer) SummarizeDay(t time.Time) (string, error) {
	ctx := context.Background()
	ctx, span := trace.StartSpan(ctx, "summary.SummarizeDay")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Starting daily summary generation",
		"date", t.Format("2006-01-02"),
	)

	csvPath, err := s.summarizer.SummarizeDay(t)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Daily summary generation failed", err,
			"date", t.Format("2006-01-02"),
		)
		return "", err
	}

	if csvPath == "" {
		logger.InfoSkip(ctx, 1, "No orders found for daily summary",
			"date", t.Format("2006-01-02"),
		)
		return "", nil
	}

	logger.InfoSkip(ctx, 1, "Daily summary generated",
		"date", t.Format("2006-01-02"),
		"csv_path", csvPath,
	)
	return csvPath, nil
}

func (s *observableSummarizer) SummarizeYesterday() (string, error) {
	ctx := context.Background()
	ctx, span := trace.StartSpan(ctx, "summary.SummarizeYesterday")
	defer span.End()

	csvPath, err := s.summarizer.SummarizeYesterday()
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Daily summary generation failed", err)
		return "", err
	}
	return csvPath, nil
}

func (s *observableSummarizer) ShouldRunNow() (bool, string) {
	return s.summarizer.ShouldRunNow()
}
