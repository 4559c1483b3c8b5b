package entity

type Product struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// Selection is an ordered set of products chosen from a listing.
// Producers return a fresh slice; consumers must not modify it.
type Selection []Product

func (s Selection) Names() []string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.Name
	}
	return names
}

type CartLine struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

// SortCriterion is the value of an option in the inventory sort control.
type SortCriterion string

const (
	SortNameAsc   SortCriterion = "az"
	SortNameDesc  SortCriterion = "za"
	SortPriceAsc  SortCriterion = "lohi"
	SortPriceDesc SortCriterion = "hilo"
)

type PriceSummary struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}
