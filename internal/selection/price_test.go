package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePrice(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback float64
		want     float64
		reason   string
	}{
		{"plain", "1500", 1000, 1500, ""},
		{"decimals", " 250.75 ", 1000, 250.75, ""},
		{"zero is a price", "0", 1000, 0, ""},
		{"missing", "", 1000, 1000, ReasonMissing},
		{"blank", "   ", 2000, 2000, ReasonMissing},
		{"garbage", "mil", 1000, 1000, ReasonUnparsable},
		{"negative", "-5", 1000, 1000, ReasonInvalid},
		{"nan", "NaN", 1000, 1000, ReasonInvalid},
		{"infinite", "+Inf", 1000, 1000, ReasonInvalid},
		{"bad fallback uses default", "", 0, DefaultPrice, ReasonMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			price := ResolvePrice(tt.raw, tt.fallback, func(reason, raw string) {
				got = reason
				assert.Equal(t, tt.raw, raw)
			})
			assert.Equal(t, tt.want, price)
			assert.Equal(t, tt.reason, got)
		})
	}
}

func TestResolvePriceNilHook(t *testing.T) {
	assert.Equal(t, DefaultPrice, ResolvePrice("x", 0, nil))
}
