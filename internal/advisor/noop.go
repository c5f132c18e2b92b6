package advisor

import (
	"context"

	"bithumb-ai-trader/internal/interfaces"
	"bithumb-ai-trader/internal/logger"
	"bithumb-ai-trader/internal/types"
)

// NoopAdvisor is a fallback advisor used when no LLM provider is configured
type NoopAdvisor struct{}

var _ interfaces.Advisor = (*NoopAdvisor)(nil)

// NewNoopAdvisor returns a new instance that always advises hold
func NewNoopAdvisor() *NoopAdvisor {
	return &NoopAdvisor{}
}

// Advise implements the Advisor interface. It always returns hold with 0 percentage
func (a *NoopAdvisor) Advise(ctx context.Context, bundle types.AdvisoryContext) ([]byte, error) {
	logger.Debug(ctx, "Noop advisor called - always returns hold", "pair", bundle.Pair)
	return []byte(`{"action":"hold","percentage":0,"reason":"noop_advisor_fallback"}`), nil
}
