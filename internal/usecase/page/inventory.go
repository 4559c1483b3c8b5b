package page

import (
	"context"
	"fmt"
	"strconv"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"
)

type InventoryPage struct {
	base
}

func NewInventoryPage(session output.SessionPort, timeouts Timeouts) *InventoryPage {
	return &InventoryPage{
		base: newBase(session, entity.PageInventory, InventoryMarker, timeouts),
	}
}

func (p *InventoryPage) ChangeSortOrder(ctx context.Context, criterion entity.SortCriterion) error {
	ctx, cancel := p.action(ctx)
	defer cancel()

	el, err := p.session.Find(ctx, InventorySort)
	if err != nil {
		return fmt.Errorf("find %s: %w", InventorySort, err)
	}
	if err := el.Select(ctx, string(criterion)); err != nil {
		return fmt.Errorf("sort by %s: %w", criterion, err)
	}
	return nil
}

// ListProducts reads the listing in display order. Nothing is cached: every
// call reads the page again.
func (p *InventoryPage) ListProducts(ctx context.Context) ([]entity.Product, error) {
	ctx, cancel := p.action(ctx)
	defer cancel()

	rows, err := p.session.FindAll(ctx, InventoryRow)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", InventoryRow, err)
	}

	products := make([]entity.Product, 0, len(rows))
	for i, row := range rows {
		name, err := childText(ctx, row, ProductName)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		price, err := childText(ctx, row, ProductPrice)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		products = append(products, entity.Product{Name: name, Price: price})
	}
	return products, nil
}

// AddToCart clicks the add control of each selected product in order. The
// cart counter has to grow by exactly one per click.
func (p *InventoryPage) AddToCart(ctx context.Context, selection entity.Selection) error {
	for _, product := range selection {
		before, err := p.CartCount(ctx)
		if err != nil {
			return err
		}
		if err := p.clickAdd(ctx, product); err != nil {
			return err
		}
		after, err := p.CartCount(ctx)
		if err != nil {
			return err
		}
		if after != before+1 {
			return entity.Mismatch("cart count after adding "+product.Name, strconv.Itoa(before+1), strconv.Itoa(after))
		}
	}
	return nil
}

// CartCount returns 0 when the counter is not shown.
func (p *InventoryPage) CartCount(ctx context.Context) (int, error) {
	visible, err := p.session.IsVisible(ctx, CartBadge)
	if err != nil {
		return 0, fmt.Errorf("check %s: %w", CartBadge, err)
	}
	if !visible {
		return 0, nil
	}

	text, err := p.text(ctx, CartBadge)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, entity.Mismatch("cart count", "<integer>", text)
	}
	return n, nil
}

func (p *InventoryPage) OpenCart(ctx context.Context) error {
	return p.click(ctx, CartLink)
}

func (p *InventoryPage) clickAdd(ctx context.Context, product entity.Product) error {
	ctx, cancel := p.action(ctx)
	defer cancel()

	rows, err := p.session.FindAll(ctx, InventoryRow)
	if err != nil {
		return fmt.Errorf("list %s: %w", InventoryRow, err)
	}
	for _, row := range rows {
		name, err := childText(ctx, row, ProductName)
		if err != nil {
			return err
		}
		if name != product.Name {
			continue
		}

		btn, err := row.Find(ctx, ProductButton)
		if err != nil {
			return fmt.Errorf("add %q: %w", product.Name, err)
		}
		if err := btn.Click(ctx); err != nil {
			return fmt.Errorf("add %q: %w", product.Name, err)
		}
		return nil
	}
	return entity.Mismatch("listed product", product.Name, "<absent>")
}
