package page

import (
	"context"
	"fmt"
	"strconv"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"
)

// singleQuantity is the only quantity the purchase flow ever produces.
const singleQuantity = "1"

type CartPage struct {
	base
}

func NewCartPage(session output.SessionPort, timeouts Timeouts) *CartPage {
	return &CartPage{
		base: newBase(session, entity.PageCart, CartMarker, timeouts),
	}
}

func (p *CartPage) ListLines(ctx context.Context) ([]entity.CartLine, error) {
	ctx, cancel := p.action(ctx)
	defer cancel()

	rows, err := p.session.FindAll(ctx, CartRow)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", CartRow, err)
	}

	lines := make([]entity.CartLine, 0, len(rows))
	for i, row := range rows {
		var line entity.CartLine
		for _, f := range []struct {
			selector string
			dst      *string
		}{
			{ProductName, &line.Name},
			{ProductPrice, &line.Price},
			{CartQuantity, &line.Quantity},
		} {
			v, err := childText(ctx, row, f.selector)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i, err)
			}
			*f.dst = v
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// VerifyContains checks the cart holds exactly expected, in order, one of each.
func (p *CartPage) VerifyContains(ctx context.Context, expected entity.Selection) error {
	lines, err := p.ListLines(ctx)
	if err != nil {
		return err
	}
	return CompareLines(expected, lines)
}

func (p *CartPage) Checkout(ctx context.Context) error {
	return p.click(ctx, CartCheckout)
}

// CompareLines reports the first difference between a selection and cart lines.
func CompareLines(expected entity.Selection, lines []entity.CartLine) error {
	if len(lines) != len(expected) {
		return entity.Mismatch("cart line count", strconv.Itoa(len(expected)), strconv.Itoa(len(lines)))
	}
	for i, want := range expected {
		got := lines[i]
		if got.Name != want.Name {
			return entity.Mismatch(fmt.Sprintf("line %d name", i), want.Name, got.Name)
		}
		if got.Price != want.Price {
			return entity.Mismatch(fmt.Sprintf("line %d price", i), want.Price, got.Price)
		}
		if got.Quantity != singleQuantity {
			return entity.Mismatch(fmt.Sprintf("line %d quantity", i), singleQuantity, got.Quantity)
		}
	}
	return nil
}
