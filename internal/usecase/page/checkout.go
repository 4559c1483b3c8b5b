package page

import (
	"context"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"
)

type CheckoutPage struct {
	base
}

func NewCheckoutPage(session output.SessionPort, timeouts Timeouts) *CheckoutPage {
	return &CheckoutPage{
		base: newBase(session, entity.PageCheckout, CheckoutMarker, timeouts),
	}
}

// SupplyIdentity fills the customer fields. Validation is left to the storefront.
func (p *CheckoutPage) SupplyIdentity(ctx context.Context, identity entity.CustomerIdentity) error {
	if err := p.fill(ctx, CheckoutFirstName, identity.FirstName); err != nil {
		return err
	}
	if err := p.fill(ctx, CheckoutLastName, identity.LastName); err != nil {
		return err
	}
	return p.fill(ctx, CheckoutPostalCode, identity.PostalCode)
}

func (p *CheckoutPage) Continue(ctx context.Context) error {
	return p.click(ctx, CheckoutContinue)
}
