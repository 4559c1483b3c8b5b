package pricing

import (
	"shopcheck/internal/domain/entity"
	"shopcheck/internal/domain/money"

	"github.com/shopspring/decimal"
)

const (
	SubtotalPrefix = "Item total: $"
	TaxPrefix      = "Tax: $"
	TotalPrefix    = "Total: $"
)

var defaultTolerance = decimal.RequireFromString("0.01")

// ParsedSummary is the numeric form of a confirmation page summary.
type ParsedSummary struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Validator checks a displayed summary against the products that were bought.
// The displayed tax is trusted as-is: no tax rate is known locally.
type Validator struct {
	tolerance decimal.Decimal
}

func NewValidator() *Validator {
	return &Validator{tolerance: defaultTolerance}
}

func (v *Validator) Verify(selection entity.Selection, summary entity.PriceSummary) (*ParsedSummary, error) {
	prices := make([]string, len(selection))
	for i, p := range selection {
		prices[i] = p.Price
	}
	subtotal, err := money.Sum(prices...)
	if err != nil {
		return nil, entity.Mismatch("selection price", "$<int>.<2 digits>", err.Error())
	}

	expectedSubtotal := money.FormatLabel(SubtotalPrefix, subtotal)
	if summary.Subtotal != expectedSubtotal {
		return nil, entity.Mismatch("subtotal", expectedSubtotal, summary.Subtotal)
	}

	tax, err := money.ParseLabel(summary.Tax, TaxPrefix)
	if err != nil {
		return nil, entity.Mismatch("tax", TaxPrefix+"<amount>", summary.Tax)
	}

	total, err := money.ParseLabel(summary.Total, TotalPrefix)
	if err != nil {
		return nil, entity.Mismatch("total", TotalPrefix+"<amount>", summary.Total)
	}

	expectedTotal := subtotal.Add(tax)
	if total.Sub(expectedTotal).Abs().GreaterThan(v.tolerance) {
		return nil, entity.Mismatch("total", money.FormatLabel(TotalPrefix, expectedTotal), summary.Total)
	}

	return &ParsedSummary{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
	}, nil
}
