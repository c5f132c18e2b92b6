package decision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bithumb-ai-trader/internal/logger"
	"bithumb-ai-trader/internal/types"
)

// ErrMalformedAdvisory is returned when the advisory payload cannot be parsed
// into a well-formed decision. It is deliberately distinct from a hold
// decision: garbage from the advisor must surface as an error, never be
// silently treated as "do nothing".
var ErrMalformedAdvisory = errors.New("malformed advisory response")

// rawPayload mirrors the advisory JSON. The action may arrive under either
// the "action" or the legacy "decision" key.
type rawPayload struct {
	Action     *string         `json:"action"`
	Decision   *string         `json:"decision"`
	Percentage json.RawMessage `json:"percentage"`
	Reason     string          `json:"reason"`
}

// Parse validates a raw advisory payload into a Decision. The payload is
// untrusted: unknown action tokens and out-of-range percentages fail closed
// with ErrMalformedAdvisory. The one tolerated inconsistency is a hold with a
// nonzero percentage, which is repaired (percentage forced to 0) and logged
// rather than rejected, since the stated intent outranks a meaningless
// magnitude.
func Parse(ctx context.Context, payload []byte) (types.Decision, error) {
	var raw rawPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return types.Decision{}, fmt.Errorf("%w: %v", ErrMalformedAdvisory, err)
	}

	token := raw.Action
	if token == nil {
		token = raw.Decision
	}
	if token == nil {
		return types.Decision{}, fmt.Errorf("%w: missing action", ErrMalformedAdvisory)
	}

	action := types.Action(strings.ToLower(strings.TrimSpace(*token)))
	if !action.Valid() {
		return types.Decision{}, fmt.Errorf("%w: unknown action %q", ErrMalformedAdvisory, *token)
	}

	if raw.Percentage == nil {
		return types.Decision{}, fmt.Errorf("%w: missing percentage", ErrMalformedAdvisory)
	}
	pct, err := coerceInt(raw.Percentage)
	if err != nil {
		return types.Decision{}, fmt.Errorf("%w: percentage: %v", ErrMalformedAdvisory, err)
	}
	if pct < 0 || pct > 100 {
		return types.Decision{}, fmt.Errorf("%w: percentage %d outside [0,100]", ErrMalformedAdvisory, pct)
	}

	return Validate(ctx, types.Decision{
		Action:     action,
		Percentage: pct,
		Reason:     strings.TrimSpace(raw.Reason),
	})
}

// Validate applies the repair policy to an already-shaped decision. It is
// idempotent: validating a valid decision returns it unchanged.
func Validate(ctx context.Context, d types.Decision) (types.Decision, error) {
	if !d.Action.Valid() {
		return types.Decision{}, fmt.Errorf("%w: unknown action %q", ErrMalformedAdvisory, d.Action)
	}
	if d.Percentage < 0 || d.Percentage > 100 {
		return types.Decision{}, fmt.Errorf("%w: percentage %d outside [0,100]", ErrMalformedAdvisory, d.Percentage)
	}
	if d.Action == types.ActionHold && d.Percentage != 0 {
		logger.Warn(ctx, "Advisory repair: hold with nonzero percentage",
			"percentage", d.Percentage,
			"reason", d.Reason,
		)
		d.Percentage = 0
	}
	return d, nil
}

// coerceInt accepts the integer-coercible encodings advisors actually emit:
// 37, 37.0, "37".
func coerceInt(raw json.RawMessage) (int, error) {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return 0, errors.New("empty value")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not numeric: %q", s)
	}
	n := int(f)
	if float64(n) != f {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}
