package interfaces

import (
	"context"

	"bithumb-ai-trader/internal/types"
)

// Advisor submits the assembled context to a language-model service and
// returns the raw structured payload the model produced. Extracting JSON from
// the model's reply is the advisor's job; validating it is not — the payload
// is untrusted until the decision validator has parsed it.
type Advisor interface {
	Advise(ctx context.Context, bundle types.AdvisoryContext) ([]byte, error)
}
