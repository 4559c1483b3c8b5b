// Package memory simulates the storefront in process. It renders the same
// element selectors as the real site and is used for dry runs and tests.
package memory

import (
	"errors"
	"sort"
	"strconv"

	"shopcheck/internal/domain/entity"
	"shopcheck/internal/domain/money"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL      = "memory://storefront/"
	CompletionMessage   = "Thank you for your order!"
	InvalidLoginMessage = "Epic sadface: Username and password do not match any user in this service"
	missingUserMessage  = "Epic sadface: Username is required"
)

var (
	ErrElementNotFound = errors.New("element not found")
	ErrStaleElement    = errors.New("element is detached from the page")
	ErrNotInteractable = errors.New("element is not interactable")
	ErrSessionClosed   = errors.New("session closed")
)

type Options struct {
	Products []entity.Product
	// Users maps usernames to passwords.
	Users   map[string]string
	TaxRate decimal.Decimal
	Faults  Faults
}

// Faults make the storefront misbehave in a controlled way.
type Faults struct {
	// TransientReads fails that many text reads with a transient error.
	TransientReads int
	// TotalSkew is added to the displayed order total.
	TotalSkew decimal.Decimal
	// CartQuantity replaces the displayed quantity of every cart line.
	CartQuantity string
	// Hidden selectors are never visible.
	Hidden []string
	// SilentAdd ignores add-to-cart clicks.
	SilentAdd bool
}

func DefaultProducts() []entity.Product {
	return []entity.Product{
		{Name: "Sauce Labs Backpack", Price: "$29.99"},
		{Name: "Sauce Labs Bike Light", Price: "$9.99"},
		{Name: "Sauce Labs Bolt T-Shirt", Price: "$15.99"},
		{Name: "Sauce Labs Fleece Jacket", Price: "$49.99"},
		{Name: "Sauce Labs Onesie", Price: "$7.99"},
		{Name: "Test.allTheThings() T-Shirt (Red)", Price: "$15.99"},
	}
}

func DefaultOptions() Options {
	return Options{
		Products: DefaultProducts(),
		Users: map[string]string{
			"standard_user":           "secret_sauce",
			"problem_user":            "secret_sauce",
			"performance_glitch_user": "secret_sauce",
		},
		TaxRate: decimal.RequireFromString("0.08"),
	}
}

type screen int

const (
	screenBlank screen = iota
	screenLogin
	screenInventory
	screenCart
	screenCheckout
	screenOverview
	screenComplete
)

var screenPaths = map[screen]string{
	screenBlank:     "about:blank",
	screenLogin:     "",
	screenInventory: "inventory.html",
	screenCart:      "cart.html",
	screenCheckout:  "checkout-step-one.html",
	screenOverview:  "checkout-step-two.html",
	screenComplete:  "checkout-complete.html",
}

// storefront is the state of one simulated browser session.
type storefront struct {
	opts Options

	baseURL  string
	screen   screen
	gen      int
	form     map[string]string
	errorMsg string
	order    entity.SortCriterion
	cart     []string

	transientLeft int
}

func newStorefront(opts Options) *storefront {
	return &storefront{
		opts:          opts,
		screen:        screenBlank,
		form:          make(map[string]string),
		order:         entity.SortNameAsc,
		transientLeft: opts.Faults.TransientReads,
	}
}

func (s *storefront) show(next screen) {
	s.screen = next
	s.gen++
	s.form = make(map[string]string)
	s.errorMsg = ""
}

func (s *storefront) url() string {
	if s.screen == screenBlank {
		return screenPaths[screenBlank]
	}
	return s.baseURL + screenPaths[s.screen]
}

func (s *storefront) listing() []entity.Product {
	products := make([]entity.Product, len(s.opts.Products))
	copy(products, s.opts.Products)

	price := func(p entity.Product) decimal.Decimal {
		v, _ := money.Parse(p.Price)
		return v
	}

	var less func(a, b entity.Product) bool
	switch s.order {
	case entity.SortNameDesc:
		less = func(a, b entity.Product) bool { return a.Name > b.Name }
	case entity.SortPriceAsc:
		less = func(a, b entity.Product) bool { return price(a).LessThan(price(b)) }
	case entity.SortPriceDesc:
		less = func(a, b entity.Product) bool { return price(a).GreaterThan(price(b)) }
	default:
		less = func(a, b entity.Product) bool { return a.Name < b.Name }
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
	return products
}

func (s *storefront) product(name string) (entity.Product, bool) {
	for _, p := range s.opts.Products {
		if p.Name == name {
			return p, true
		}
	}
	return entity.Product{}, false
}

func (s *storefront) inCart(name string) bool {
	for _, n := range s.cart {
		if n == name {
			return true
		}
	}
	return false
}

func (s *storefront) toggle(name string) {
	for i, n := range s.cart {
		if n == name {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
	if !s.opts.Faults.SilentAdd {
		s.cart = append(s.cart, name)
	}
}

func (s *storefront) login() {
	user, pass := s.form["#user-name"], s.form["#password"]
	switch {
	case user == "":
		s.errorMsg = missingUserMessage
	case s.opts.Users[user] != pass || pass == "":
		s.errorMsg = InvalidLoginMessage
	default:
		s.show(screenInventory)
	}
}

func (s *storefront) continueCheckout() {
	for _, f := range []struct{ sel, label string }{
		{"#first-name", "First Name"},
		{"#last-name", "Last Name"},
		{"#postal-code", "Postal Code"},
	} {
		if s.form[f.sel] == "" {
			s.errorMsg = "Error: " + f.label + " is required"
			return
		}
	}
	s.show(screenOverview)
}

func (s *storefront) finish() {
	s.cart = nil
	s.show(screenComplete)
}

func (s *storefront) totals() (subtotal, tax, total decimal.Decimal) {
	for _, name := range s.cart {
		p, _ := s.product(name)
		v, _ := money.Parse(p.Price)
		subtotal = subtotal.Add(v)
	}
	tax = subtotal.Mul(s.opts.TaxRate).Round(2)
	total = subtotal.Add(tax).Add(s.opts.Faults.TotalSkew)
	return subtotal, tax, total
}

func (s *storefront) quantity() string {
	if q := s.opts.Faults.CartQuantity; q != "" {
		return q
	}
	return "1"
}

func (s *storefront) hidden(selector string) bool {
	for _, h := range s.opts.Faults.Hidden {
		if h == selector {
			return true
		}
	}
	return false
}

func (s *storefront) badge() string {
	return strconv.Itoa(len(s.cart))
}
