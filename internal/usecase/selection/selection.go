package selection

import (
	"fmt"
	"sort"

	"shopcheck/internal/domain/entity"
	"shopcheck/internal/domain/money"

	"github.com/shopspring/decimal"
)

// SelectCheapest returns the k lowest-priced products, cheapest first.
// Equal prices keep their listing order. The input slice is left untouched,
// and k larger than the listing returns every product.
func SelectCheapest(products []entity.Product, k int) (entity.Selection, error) {
	if k <= 0 {
		return entity.Selection{}, nil
	}

	type priced struct {
		product entity.Product
		price   decimal.Decimal
	}

	items := make([]priced, len(products))
	for i, p := range products {
		v, err := money.Parse(p.Price)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", p.Name, err)
		}
		items[i] = priced{product: p, price: v}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].price.LessThan(items[j].price)
	})

	n := min(k, len(items))
	result := make(entity.Selection, n)
	for i := range n {
		result[i] = items[i].product
	}
	return result, nil
}

// IsSortedByPrice reports whether prices are non-decreasing (asc) or non-increasing.
func IsSortedByPrice(products []entity.Product, asc bool) (bool, error) {
	for i := 1; i < len(products); i++ {
		prev, err := money.Parse(products[i-1].Price)
		if err != nil {
			return false, err
		}
		cur, err := money.Parse(products[i].Price)
		if err != nil {
			return false, err
		}
		if asc && cur.LessThan(prev) {
			return false, nil
		}
		if !asc && cur.GreaterThan(prev) {
			return false, nil
		}
	}
	return true, nil
}
