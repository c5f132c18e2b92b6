package engineobs

import (
	"context"
	"time"

	"bithumb-ai-trader/internal/interfaces"
	"bithumb-ai-trader/internal/logger"
	"bithumb-ai-trader/internal/trace"
	"bithumb-ai-trader/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) RunCycle(ctx context.Context) (*types.CycleResult, error) {
	ctx, span := trace.StartSpan(ctx, "engine.RunCycle")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting decision cycle")

	result, err := oe.engine.RunCycle(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Decision cycle failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Decision cycle completed",
		"pair", result.Pair,
		"action", result.Decision.Action,
		"percentage", result.Decision.Percentage,
		"outcome", result.Outcome,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}
