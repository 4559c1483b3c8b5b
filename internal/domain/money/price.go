// Package money parses and formats the storefront's single currency format:
// a dollar sign, an integer part and exactly two fraction digits ("$29.99").
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const Symbol = "$"

var ErrInvalidPrice = errors.New("invalid price")

var amountPattern = regexp.MustCompile(`^(0|[1-9]\d*)\.\d{2}$`)

// Parse converts "$12.34" into a decimal amount.
func Parse(price string) (decimal.Decimal, error) {
	if !strings.HasPrefix(price, Symbol) {
		return decimal.Zero, fmt.Errorf("%w: %q: missing %q", ErrInvalidPrice, price, Symbol)
	}
	return parseAmount(price, strings.TrimPrefix(price, Symbol))
}

func Format(amount decimal.Decimal) string {
	return Symbol + amount.StringFixed(2)
}

// ParseLabel strips a fixed textual prefix such as "Tax: $" and parses the rest.
func ParseLabel(label, prefix string) (decimal.Decimal, error) {
	if !strings.HasPrefix(label, prefix) {
		return decimal.Zero, fmt.Errorf("%w: %q: missing prefix %q", ErrInvalidPrice, label, prefix)
	}
	return parseAmount(label, strings.TrimPrefix(label, prefix))
}

func FormatLabel(prefix string, amount decimal.Decimal) string {
	return prefix + amount.StringFixed(2)
}

// Sum adds the prices of all products, failing on the first malformed one.
func Sum(prices ...string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range prices {
		v, err := Parse(p)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(v)
	}
	return total, nil
}

func parseAmount(raw, amount string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(amount) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	v, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidPrice, raw, err)
	}
	return v, nil
}
