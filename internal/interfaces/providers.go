package interfaces

import (
	"context"

	"bithumb-ai-trader/internal/types"
)

// Optional context providers. Each is independently fallible: an error means
// the cycle proceeds without that input, it never aborts the cycle.

type FearGreedProvider interface {
	Index(ctx context.Context) (*types.FearGreed, error)
}

type NewsProvider interface {
	Headlines(ctx context.Context, limit int) ([]types.NewsHeadline, error)
}

type ChartProvider interface {
	Snapshot(ctx context.Context) (*types.ChartSnapshot, error)
}

type TranscriptProvider interface {
	Transcript(ctx context.Context) (string, error)
}
