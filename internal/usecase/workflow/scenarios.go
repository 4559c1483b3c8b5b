package workflow

import (
	"context"
	"errors"
	"strconv"

	"shopcheck/internal/domain/entity"
	"shopcheck/internal/usecase/pricing"
	"shopcheck/internal/usecase/selection"
)

// Receipt is what a completed purchase observed along the way.
type Receipt struct {
	Selection entity.Selection
	Lines     []entity.CartLine
	Summary   *pricing.ParsedSummary
	Message   string
}

// Login opens the storefront, signs in and waits for the inventory.
func (o *Orchestrator) Login(ctx context.Context, creds entity.Credentials) error {
	login := o.pages.Login
	if err := o.step(ctx, entity.PageLogin, "open", login.Open); err != nil {
		return err
	}
	if err := o.enter(ctx, login); err != nil {
		return err
	}
	if err := o.step(ctx, entity.PageLogin, "authenticate", func(ctx context.Context) error {
		return login.Authenticate(ctx, creds)
	}); err != nil {
		return err
	}
	return o.enter(ctx, o.pages.Inventory)
}

// CompletePurchase buys the cheapest products and checks every page on the way.
func (o *Orchestrator) CompletePurchase(ctx context.Context) (*Receipt, error) {
	if err := o.Login(ctx, o.fixture.Users.Standard); err != nil {
		return nil, err
	}

	chosen, err := o.addCheapest(ctx, o.cfg.PurchaseCount)
	if err != nil {
		return nil, err
	}

	lines, err := o.verifyCart(ctx, chosen)
	if err != nil {
		return nil, err
	}

	checkout := o.pages.Checkout
	if err := o.step(ctx, entity.PageCart, "checkout", o.pages.Cart.Checkout); err != nil {
		return nil, err
	}
	if err := o.enter(ctx, checkout); err != nil {
		return nil, err
	}
	if err := o.step(ctx, entity.PageCheckout, "supply_identity", func(ctx context.Context) error {
		return checkout.SupplyIdentity(ctx, o.fixture.Customer)
	}); err != nil {
		return nil, err
	}
	if err := o.step(ctx, entity.PageCheckout, "continue", checkout.Continue); err != nil {
		return nil, err
	}

	confirmation := o.pages.Confirmation
	if err := o.enter(ctx, confirmation); err != nil {
		return nil, err
	}
	summary, err := read(ctx, o, entity.PageConfirmation, "get_summary", confirmation.Summary)
	if err != nil {
		return nil, err
	}
	var parsed *pricing.ParsedSummary
	if err := o.step(ctx, entity.PageConfirmation, "verify_pricing", func(context.Context) error {
		var err error
		parsed, err = o.validator.Verify(chosen, summary)
		return err
	}); err != nil {
		return nil, err
	}
	if err := o.step(ctx, entity.PageConfirmation, "finalize", confirmation.Finalize); err != nil {
		return nil, err
	}

	msg, err := read(ctx, o, entity.PageConfirmation, "completion_message", confirmation.CompletionMessage)
	if err != nil {
		return nil, err
	}
	if msg != CompletionMessage {
		return nil, mismatch(entity.PageConfirmation, "completion_message", "completion message", CompletionMessage, msg)
	}

	return &Receipt{
		Selection: chosen,
		Lines:     lines,
		Summary:   parsed,
		Message:   msg,
	}, nil
}

// RejectInvalidLogin submits the invalid credentials and returns the error
// text shown. Being let in is a failure.
func (o *Orchestrator) RejectInvalidLogin(ctx context.Context) (string, error) {
	login := o.pages.Login
	if err := o.step(ctx, entity.PageLogin, "open", login.Open); err != nil {
		return "", err
	}
	if err := o.enter(ctx, login); err != nil {
		return "", err
	}

	creds := o.fixture.Users.Invalid
	err := o.step(ctx, entity.PageLogin, "authenticate", func(ctx context.Context) error {
		err := login.Authenticate(ctx, creds)
		if err == nil {
			return entity.Mismatch("login outcome", "rejected", "accepted")
		}
		var rejected *entity.AuthenticationRejected
		if errors.As(err, &rejected) {
			return nil
		}
		return err
	})
	if err != nil {
		return "", err
	}

	displayed, err := read(ctx, o, entity.PageInventory, "is_displayed", o.pages.Inventory.IsDisplayed)
	if err != nil {
		return "", err
	}
	if displayed {
		return "", mismatch(entity.PageInventory, "is_displayed", "inventory reached", "false", "true")
	}

	text, err := read(ctx, o, entity.PageLogin, "error_text", login.ErrorText)
	if err != nil {
		return "", err
	}
	if want := o.fixture.ErrorMessages.InvalidLogin; text != want {
		return "", mismatch(entity.PageLogin, "error_text", "login error", want, text)
	}
	return text, nil
}

// CheckCartContents adds several of the cheapest products and checks the cart.
func (o *Orchestrator) CheckCartContents(ctx context.Context) (entity.Selection, error) {
	if err := o.Login(ctx, o.fixture.Users.Standard); err != nil {
		return nil, err
	}
	chosen, err := o.addCheapest(ctx, o.cfg.CartCheckCount)
	if err != nil {
		return nil, err
	}
	if _, err := o.verifyCart(ctx, chosen); err != nil {
		return nil, err
	}
	return chosen, nil
}

// SortByPrice checks both price orderings of the listing.
func (o *Orchestrator) SortByPrice(ctx context.Context) error {
	if err := o.Login(ctx, o.fixture.Users.Standard); err != nil {
		return err
	}

	inventory := o.pages.Inventory
	for _, order := range []struct {
		criterion entity.SortCriterion
		asc       bool
	}{
		{entity.SortPriceAsc, true},
		{entity.SortPriceDesc, false},
	} {
		if err := o.step(ctx, entity.PageInventory, "change_sort_order", func(ctx context.Context) error {
			return inventory.ChangeSortOrder(ctx, order.criterion)
		}); err != nil {
			return err
		}
		products, err := read(ctx, o, entity.PageInventory, "list_products", inventory.ListProducts)
		if err != nil {
			return err
		}
		sorted, err := selection.IsSortedByPrice(products, order.asc)
		if err != nil {
			return &entity.StageError{Stage: entity.PageInventory, Operation: "list_products", Err: err}
		}
		if !sorted {
			return mismatch(entity.PageInventory, "list_products", "order "+string(order.criterion), "sorted", "unsorted")
		}
	}
	return nil
}

// EmptyCart selects nothing, adds nothing and expects no cart counter.
func (o *Orchestrator) EmptyCart(ctx context.Context) error {
	if err := o.Login(ctx, o.fixture.Users.Standard); err != nil {
		return err
	}
	chosen, err := o.addCheapest(ctx, 0)
	if err != nil {
		return err
	}
	if len(chosen) != 0 {
		return mismatch(entity.PageInventory, "select_cheapest", "selection size", "0", strconv.Itoa(len(chosen)))
	}
	return nil
}

// addCheapest sorts by price, picks k products and adds them to the cart.
func (o *Orchestrator) addCheapest(ctx context.Context, k int) (entity.Selection, error) {
	inventory := o.pages.Inventory
	if err := o.step(ctx, entity.PageInventory, "change_sort_order", func(ctx context.Context) error {
		return inventory.ChangeSortOrder(ctx, entity.SortPriceAsc)
	}); err != nil {
		return nil, err
	}

	products, err := read(ctx, o, entity.PageInventory, "list_products", inventory.ListProducts)
	if err != nil {
		return nil, err
	}

	var chosen entity.Selection
	if err := o.step(ctx, entity.PageInventory, "select_cheapest", func(context.Context) error {
		chosen, err = selection.SelectCheapest(products, k)
		return err
	}); err != nil {
		return nil, err
	}
	o.log.Info("products selected", "count", len(chosen), "products", chosen.Names())

	if err := o.step(ctx, entity.PageInventory, "add_to_cart", func(ctx context.Context) error {
		return inventory.AddToCart(ctx, chosen)
	}); err != nil {
		return nil, err
	}

	count, err := read(ctx, o, entity.PageInventory, "cart_count", inventory.CartCount)
	if err != nil {
		return nil, err
	}
	if count != len(chosen) {
		return nil, mismatch(entity.PageInventory, "cart_count", "cart count", strconv.Itoa(len(chosen)), strconv.Itoa(count))
	}
	return chosen, nil
}

func (o *Orchestrator) verifyCart(ctx context.Context, expected entity.Selection) ([]entity.CartLine, error) {
	cart := o.pages.Cart
	if err := o.step(ctx, entity.PageInventory, "open_cart", o.pages.Inventory.OpenCart); err != nil {
		return nil, err
	}
	if err := o.enter(ctx, cart); err != nil {
		return nil, err
	}

	if err := o.check(ctx, entity.PageCart, "verify_contains", func(ctx context.Context) error {
		return cart.VerifyContains(ctx, expected)
	}); err != nil {
		return nil, err
	}
	return read(ctx, o, entity.PageCart, "list_lines", cart.ListLines)
}
