package selection

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

const (
	// DefaultCurrencySymbol is the colón sign used by the raffles.
	DefaultCurrencySymbol = "₡"
	// DefaultCurrencyPattern groups thousands with "," and keeps two decimals.
	DefaultCurrencyPattern = "#,###.##"
)

// MoneyFormatter renders totals as currency strings with exactly two
// decimals, e.g. "₡3,000.00".
type MoneyFormatter struct {
	Symbol  string
	Pattern string
}

// DefaultMoney returns the formatter used when nothing is configured.
func DefaultMoney() MoneyFormatter {
	return MoneyFormatter{Symbol: DefaultCurrencySymbol, Pattern: DefaultCurrencyPattern}
}

// NewMoneyFormatter validates pattern against humanize.FormatFloat and
// rejects patterns that do not produce two decimals.
func NewMoneyFormatter(symbol, pattern string) (m MoneyFormatter, err error) {
	if pattern == "" {
		pattern = DefaultCurrencyPattern
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid currency pattern %q: %v", pattern, r)
		}
	}()
	sample := humanize.FormatFloat(pattern, 1.25)
	if len(sample) < 4 || sample[len(sample)-2:] != "25" || isDigit(sample[len(sample)-3]) {
		return MoneyFormatter{}, fmt.Errorf("currency pattern %q must keep two decimals", pattern)
	}
	return MoneyFormatter{Symbol: symbol, Pattern: pattern}, nil
}

// Format renders amount with the configured symbol and pattern.
func (m MoneyFormatter) Format(amount float64) string {
	pattern := m.Pattern
	if pattern == "" {
		pattern = DefaultCurrencyPattern
	}
	return m.Symbol + humanize.FormatFloat(pattern, amount)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
