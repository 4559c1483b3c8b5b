package entity

type PageName string

const (
	PageLogin        PageName = "login"
	PageInventory    PageName = "inventory"
	PageCart         PageName = "cart"
	PageCheckout     PageName = "checkout"
	PageConfirmation PageName = "confirmation"
)

func (p PageName) String() string {
	return string(p)
}

// PageSnapshot is the state of a remote page captured for diagnostics.
type PageSnapshot struct {
	URL        string
	Title      string
	HTML       string
	Screenshot *Screenshot
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}
