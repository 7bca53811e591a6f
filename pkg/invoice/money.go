package invoice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidRate is returned by ParseRate for anything that is not a
// non-negative amount with at most two fraction digits.
var ErrInvalidRate = errors.New("invalid rate")

// ParseRate parses a currency amount as typed by a user, e.g. "100", "$1,250.50".
func ParseRate(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "$"))
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidRate)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidRate, s)
	}
	if err := checkRate(d); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q %v", ErrInvalidRate, s, err)
	}
	return d, nil
}

func checkRate(d decimal.Decimal) error {
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	if !d.Equal(d.Round(2)) {
		return errors.New("has more than two decimal places")
	}
	return nil
}

// FormatAmount renders an amount with exactly two decimals, no currency sign.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
