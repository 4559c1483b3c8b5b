package memory

import (
	"context"
	"fmt"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"
	"shopcheck/internal/domain/money"
)

var _ output.ElementPort = (*element)(nil)

var inputs = map[string]bool{
	"#user-name":   true,
	"#password":    true,
	"#first-name":  true,
	"#last-name":   true,
	"#postal-code": true,
}

var sortLabels = map[entity.SortCriterion]string{
	entity.SortNameAsc:   "Name (A to Z)",
	entity.SortNameDesc:  "Name (Z to A)",
	entity.SortPriceAsc:  "Price (low to high)",
	entity.SortPriceDesc: "Price (high to low)",
}

type element struct {
	sess     *Session
	gen      int
	selector string
	// rowKind and row identify the list row the element belongs to.
	rowKind string
	row     string
}

func (e *element) Text(ctx context.Context) (string, error) {
	var text string
	err := e.live(ctx, "text", func(st *storefront) error {
		if st.transientLeft > 0 {
			st.transientLeft--
			return entity.Transient("text "+e.selector, ErrStaleElement)
		}
		if e.row != "" {
			text = st.rowText(e.rowKind, e.row, e.selector)
			return nil
		}
		text = st.text(e.selector)
		return nil
	})
	return text, err
}

func (e *element) Visible(ctx context.Context) (bool, error) {
	var visible bool
	err := e.live(ctx, "visible", func(st *storefront) error {
		visible = !st.hidden(e.selector)
		return nil
	})
	return visible, err
}

func (e *element) Fill(ctx context.Context, text string) error {
	return e.live(ctx, "fill", func(st *storefront) error {
		if e.row != "" || !inputs[e.selector] {
			return fmt.Errorf("fill %s: %w", e.selector, ErrNotInteractable)
		}
		st.form[e.selector] = text
		return nil
	})
}

func (e *element) Click(ctx context.Context) error {
	return e.live(ctx, "click", func(st *storefront) error {
		if e.row != "" {
			if e.selector != "button" {
				return nil
			}
			st.toggle(e.row)
			return nil
		}
		switch e.selector {
		case "#login-button":
			st.login()
		case ".shopping_cart_link":
			st.show(screenCart)
		case "#checkout":
			st.show(screenCheckout)
		case "#continue":
			st.continueCheckout()
		case "#finish":
			st.finish()
		}
		return nil
	})
}

func (e *element) Select(ctx context.Context, value string) error {
	return e.live(ctx, "select", func(st *storefront) error {
		if e.selector != ".product_sort_container" {
			return fmt.Errorf("select on %s: %w", e.selector, ErrNotInteractable)
		}
		criterion := entity.SortCriterion(value)
		if _, ok := sortLabels[criterion]; !ok {
			return fmt.Errorf("%w: option %q", ErrElementNotFound, value)
		}
		st.order = criterion
		return nil
	})
}

func (e *element) Find(ctx context.Context, selector string) (output.ElementPort, error) {
	var child output.ElementPort
	err := e.live(ctx, "find", func(st *storefront) error {
		if e.row == "" || e.selector != e.rowKind {
			return fmt.Errorf("%w: %s inside %s", ErrElementNotFound, selector, e.selector)
		}
		if !rowHas(e.rowKind, selector) {
			return fmt.Errorf("%w: %s inside %s", ErrElementNotFound, selector, e.rowKind)
		}
		child = &element{sess: e.sess, gen: e.gen, selector: selector, rowKind: e.rowKind, row: e.row}
		return nil
	})
	return child, err
}

// live runs fn if the element still belongs to the rendered page.
func (e *element) live(ctx context.Context, op string, fn func(st *storefront) error) error {
	return e.sess.do(ctx, func(st *storefront) error {
		if st.gen != e.gen {
			return entity.Transient(op+" "+e.selector, ErrStaleElement)
		}
		if e.row != "" && !contains(st.rows(e.rowKind), e.row) {
			return entity.Transient(op+" "+e.selector, ErrStaleElement)
		}
		return fn(st)
	})
}

func rowHas(kind, selector string) bool {
	switch selector {
	case ".inventory_item_name", ".inventory_item_price", "button":
		return true
	case ".cart_quantity":
		return kind == cartRow
	}
	return false
}

func (st *storefront) rowText(kind, name, selector string) string {
	p, _ := st.product(name)
	switch selector {
	case ".inventory_item_name":
		return p.Name
	case ".inventory_item_price":
		return p.Price
	case ".cart_quantity":
		return st.quantity()
	case "button":
		if kind == inventoryRow && !st.inCart(name) {
			return "Add to cart"
		}
		return "Remove"
	}
	return ""
}

func (st *storefront) text(selector string) string {
	if inputs[selector] {
		return st.form[selector]
	}
	switch selector {
	case errorRegion:
		return st.errorMsg
	case cartBadge:
		return st.badge()
	case ".product_sort_container":
		return sortLabels[st.order]
	case ".summary_subtotal_label", ".summary_tax_label", ".summary_total_label":
		subtotal, tax, total := st.totals()
		switch selector {
		case ".summary_subtotal_label":
			return money.FormatLabel("Item total: $", subtotal)
		case ".summary_tax_label":
			return money.FormatLabel("Tax: $", tax)
		default:
			return money.FormatLabel("Total: $", total)
		}
	case ".complete-header":
		return CompletionMessage
	case "#login-button":
		return "Login"
	case "#checkout":
		return "Checkout"
	case "#continue":
		return "Continue"
	case "#finish":
		return "Finish"
	}
	return ""
}

func contains(items []string, item string) bool {
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}
