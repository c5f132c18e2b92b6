package advisorobs

import (
	"context"

	"bithumb-ai-trader/internal/interfaces"
	"bithumb-ai-trader/internal/logger"
	"bithumb-ai-trader/internal/trace"
	"bithumb-ai-trader/internal/types"
)

// observableAdvisor wraps an Advisor with observability (logging & tracing)
type observableAdvisor struct {
	advisor interfaces.Advisor
}

// Compile-time interface check
var _ interfaces.Advisor = (*observableAdvisor)(nil)

// Wrap wraps an advisor with observability middleware
func Wrap(advisor interfaces.Advisor) interfaces.Advisor {
	return &observableAdvisor{
		advisor: advisor,
	}
}

// Advise requests a trading decision with observability
func (oa *observableAdvisor) Advise(ctx context.Context, bundle types.AdvisoryContext) ([]byte, error) {
	ctx, span := trace.StartSpan(ctx, "advisor.Advise")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting advisory",
		"pair", bundle.Pair,
		"price", bundle.Snapshot.Price,
		"missing_context", bundle.Missing,
	)

	payload, err := oa.advisor.Advise(ctx, bundle)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to get advisory", err,
			"pair", bundle.Pair,
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Advisory received",
		"pair", bundle.Pair,
		"payload_bytes", len(payload),
	)
	return payload, nil
}
