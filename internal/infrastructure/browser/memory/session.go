package memory

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"
)

var _ output.SessionPort = (*Session)(nil)

const (
	inventoryRow = ".inventory_item"
	cartRow      = ".cart_item"
	errorRegion  = `[data-test="error"]`
	cartBadge    = ".shopping_cart_badge"
)

var screenElements = map[screen][]string{
	screenLogin:     {"#user-name", "#password", "#login-button"},
	screenInventory: {".inventory_list", ".product_sort_container", ".shopping_cart_link"},
	screenCart:      {".cart_list", "#checkout", ".shopping_cart_link"},
	screenCheckout:  {".checkout_info", "#first-name", "#last-name", "#postal-code", "#continue"},
	screenOverview:  {".summary_info", ".summary_subtotal_label", ".summary_tax_label", ".summary_total_label", "#finish"},
	screenComplete:  {".complete-header"},
}

// Session is one simulated browser tab.
type Session struct {
	mu     sync.Mutex
	store  *storefront
	closed bool
}

func NewSession(opts Options) *Session {
	return &Session{store: newStorefront(opts)}
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.do(ctx, func(st *storefront) error {
		if !strings.HasSuffix(url, "/") {
			url += "/"
		}
		st.baseURL = url
		st.show(screenLogin)
		return nil
	})
}

func (s *Session) WaitVisible(ctx context.Context, selector string) (output.ElementPort, error) {
	var el output.ElementPort
	err := s.do(ctx, func(st *storefront) error {
		if !st.attached(selector) || st.hidden(selector) {
			return fmt.Errorf("%w: %s not visible on %s", ErrElementNotFound, selector, st.url())
		}
		el = s.element(st, selector, "", "")
		return nil
	})
	return el, err
}

func (s *Session) Find(ctx context.Context, selector string) (output.ElementPort, error) {
	var el output.ElementPort
	err := s.do(ctx, func(st *storefront) error {
		if !st.attached(selector) {
			return fmt.Errorf("%w: %s on %s", ErrElementNotFound, selector, st.url())
		}
		el = s.element(st, selector, "", "")
		return nil
	})
	return el, err
}

func (s *Session) FindAll(ctx context.Context, selector string) ([]output.ElementPort, error) {
	var els []output.ElementPort
	err := s.do(ctx, func(st *storefront) error {
		for _, name := range st.rows(selector) {
			els = append(els, s.element(st, selector, selector, name))
		}
		if len(els) == 0 && st.attached(selector) {
			els = append(els, s.element(st, selector, "", ""))
		}
		return nil
	})
	return els, err
}

func (s *Session) IsVisible(ctx context.Context, selector string) (bool, error) {
	var visible bool
	err := s.do(ctx, func(st *storefront) error {
		visible = st.attached(selector) && !st.hidden(selector)
		return nil
	})
	return visible, err
}

func (s *Session) Snapshot(ctx context.Context) (*entity.PageSnapshot, error) {
	var snap *entity.PageSnapshot
	err := s.do(ctx, func(st *storefront) error {
		snap = &entity.PageSnapshot{
			URL:   st.url(),
			Title: "Swag Labs",
			HTML:  st.render(),
		}
		return nil
	})
	return snap, err
}

func (s *Session) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.url()
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Session) do(ctx context.Context, fn func(st *storefront) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return fn(s.store)
}

func (s *Session) element(st *storefront, selector, rowKind, row string) *element {
	return &element{sess: s, gen: st.gen, selector: selector, rowKind: rowKind, row: row}
}

func (st *storefront) attached(selector string) bool {
	for _, sel := range screenElements[st.screen] {
		if sel == selector {
			return true
		}
	}
	switch selector {
	case errorRegion:
		return st.errorMsg != "" && (st.screen == screenLogin || st.screen == screenCheckout)
	case cartBadge:
		return len(st.cart) > 0 && (st.screen == screenInventory || st.screen == screenCart)
	}
	return false
}

// rows returns the product names backing each row element of selector.
func (st *storefront) rows(selector string) []string {
	switch {
	case selector == inventoryRow && st.screen == screenInventory:
		listing := st.listing()
		names := make([]string, len(listing))
		for i, p := range listing {
			names[i] = p.Name
		}
		return names
	case selector == cartRow && (st.screen == screenCart || st.screen == screenOverview):
		return append([]string(nil), st.cart...)
	}
	return nil
}

func (st *storefront) render() string {
	var b strings.Builder
	b.WriteString("<html><head><title>Swag Labs</title></head><body>")
	fmt.Fprintf(&b, `<div id="page" data-path="%s">`, html.EscapeString(screenPaths[st.screen]))
	for _, sel := range screenElements[st.screen] {
		fmt.Fprintf(&b, `<div data-selector="%s">%s</div>`, html.EscapeString(sel), html.EscapeString(st.text(sel)))
	}
	if st.attached(errorRegion) {
		fmt.Fprintf(&b, `<h3 data-test="error">%s</h3>`, html.EscapeString(st.errorMsg))
	}
	if st.attached(cartBadge) {
		fmt.Fprintf(&b, `<span class="shopping_cart_badge">%s</span>`, st.badge())
	}
	for _, kind := range []string{inventoryRow, cartRow} {
		for _, name := range st.rows(kind) {
			p, _ := st.product(name)
			fmt.Fprintf(&b, `<div class="%s"><div class="inventory_item_name">%s</div><div class="inventory_item_price">%s</div></div>`,
				strings.TrimPrefix(kind, "."), html.EscapeString(p.Name), html.EscapeString(p.Price))
		}
	}
	b.WriteString("</div></body></html>")
	return b.String()
}
