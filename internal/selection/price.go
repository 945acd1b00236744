package selection

import (
	"math"
	"strconv"
	"strings"
)

// DefaultPrice is used when the page carries no usable price.
const DefaultPrice = 1000.00

// Reasons passed to a FallbackHook.
const (
	ReasonMissing    = "missing"
	ReasonUnparsable = "unparsable"
	ReasonInvalid    = "invalid"
)

// FallbackHook is told whenever ResolvePrice had to fall back. A fallback
// means the page template rendered a bad price field.
type FallbackHook func(reason, raw string)

// ResolvePrice parses the hidden price field. Missing, unparsable, negative
// and non-finite values resolve to fallback (DefaultPrice when fallback is
// not positive) after notifying hook.
func ResolvePrice(raw string, fallback float64, hook FallbackHook) float64 {
	if fallback <= 0 || math.IsNaN(fallback) || math.IsInf(fallback, 0) {
		fallback = DefaultPrice
	}
	notify := func(reason string) float64 {
		if hook != nil {
			hook(reason, raw)
		}
		return fallback
	}

	s := strings.TrimSpace(raw)
	if s == "" {
		return notify(ReasonMissing)
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return notify(ReasonUnparsable)
	}
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return notify(ReasonInvalid)
	}
	return p
}
