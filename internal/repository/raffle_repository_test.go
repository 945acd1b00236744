package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeWinningNumbers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty column", "", nil},
		{"empty list", "[]", []string{}},
		{"strings", `["07", " 42 "]`, []string{"07", "42"}},
		{"integers", `[7, 42]`, []string{"07", "42"}},
		{"malformed", `{"a":1}`, nil},
		{"garbage", `not json`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeWinningNumbers(tt.raw))
		})
	}
}
