package interfaces

import (
	"context"

	"bithumb-ai-trader/internal/types"
)

type Engine interface {
	RunCycle(ctx context.Context) (*types.CycleResult, error)
}
