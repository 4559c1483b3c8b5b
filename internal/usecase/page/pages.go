package page

import "shopcheck/internal/application/port/output"

var (
	_ Agent = (*LoginPage)(nil)
	_ Agent = (*InventoryPage)(nil)
	_ Agent = (*CartPage)(nil)
	_ Agent = (*CheckoutPage)(nil)
	_ Agent = (*ConfirmationPage)(nil)
)

// Pages is the set of agents bound to one session.
type Pages struct {
	Login        *LoginPage
	Inventory    *InventoryPage
	Cart         *CartPage
	Checkout     *CheckoutPage
	Confirmation *ConfirmationPage
}

func New(session output.SessionPort, baseURL string, timeouts Timeouts) *Pages {
	return &Pages{
		Login:        NewLoginPage(session, baseURL, timeouts),
		Inventory:    NewInventoryPage(session, timeouts),
		Cart:         NewCartPage(session, timeouts),
		Checkout:     NewCheckoutPage(session, timeouts),
		Confirmation: NewConfirmationPage(session, timeouts),
	}
}
