package page

// Storefront element selectors.
const (
	LoginMarker   = "#login-button"
	LoginUsername = "#user-name"
	LoginPassword = "#password"
	LoginSubmit   = "#login-button"
	LoginError    = `[data-test="error"]`

	InventoryMarker = ".inventory_list"
	InventorySort   = ".product_sort_container"
	InventoryRow    = ".inventory_item"
	ProductName     = ".inventory_item_name"
	ProductPrice    = ".inventory_item_price"
	ProductButton   = "button"
	CartBadge       = ".shopping_cart_badge"
	CartLink        = ".shopping_cart_link"

	CartMarker   = ".cart_list"
	CartRow      = ".cart_item"
	CartQuantity = ".cart_quantity"
	CartCheckout = "#checkout"

	CheckoutMarker     = ".checkout_info"
	CheckoutFirstName  = "#first-name"
	CheckoutLastName   = "#last-name"
	CheckoutPostalCode = "#postal-code"
	CheckoutContinue   = "#continue"

	ConfirmationMarker   = ".summary_info"
	SummarySubtotal      = ".summary_subtotal_label"
	SummaryTax           = ".summary_tax_label"
	SummaryTotal         = ".summary_total_label"
	ConfirmationFinish   = "#finish"
	ConfirmationComplete = ".complete-header"
)
