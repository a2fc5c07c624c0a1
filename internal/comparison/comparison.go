// Package comparison implements the pure selection logic behind the quote
// comparison panel. It reads quote snapshots and never touches storage.
package comparison

import (
	"github.com/google/uuid"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/pricing"
)

// ProductUnion returns the distinct product ids referenced by any line of
// any quote, in first-appearance order across the quote list.
func ProductUnion(quotes []domain.Quote) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var union []uuid.UUID
	for _, q := range quotes {
		for _, item := range q.Items {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			union = append(union, item.ProductID)
		}
	}
	return union
}

// BestPriceForProduct returns the lowest effective price any of the quotes
// offers for productID. ok is false when no quote includes the product.
func BestPriceForProduct(quotes []domain.Quote, productID uuid.UUID) (float64, bool) {
	best := 0.0
	found := false
	for i := range quotes {
		item, ok := quotes[i].ItemForProduct(productID)
		if !ok {
			continue
		}
		price := pricing.EffectivePrice(*item)
		if !found || price < best {
			best = price
			found = true
		}
	}
	return best, found
}

// CheapestByTotal returns every quote tying for the minimum total. The empty
// input yields an empty result.
func CheapestByTotal(quotes []domain.Quote) []domain.Quote {
	if len(quotes) == 0 {
		return nil
	}
	min := quotes[0].Total
	for _, q := range quotes[1:] {
		if q.Total < min {
			min = q.Total
		}
	}
	var cheapest []domain.Quote
	for _, q := range quotes {
		if q.Total == min {
			cheapest = append(cheapest, q)
		}
	}
	return cheapest
}
