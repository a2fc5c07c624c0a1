// Package pricing holds the quote arithmetic: line subtotals, quote
// aggregates and the effective-price figure used by the comparison engine.
// All functions are pure and operate on rounded 2-decimal amounts.
package pricing

import (
	"math"

	"github.com/gestorcrm/quotes-api/internal/domain"
)

// DefaultTaxRate is the tax rate applied to quote subtotals unless
// overridden in config.
const DefaultTaxRate = 0.21

// Round2 rounds to 2 decimals, halves away from zero. Every monetary amount
// is rounded at computation time so stored and displayed values never differ.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ItemSubtotal computes a line subtotal: quantity times unit price minus the
// absolute line discount. The result is not clamped; a discount larger than
// the gross amount yields a negative subtotal.
func ItemSubtotal(quantity int, unitPrice, discount float64) float64 {
	return Round2(float64(quantity)*unitPrice - discount)
}

// Totals aggregates a quote's derived amounts
type Totals struct {
	Subtotal      float64
	DiscountTotal float64
	Tax           float64
	Total         float64
}

// QuoteTotals recomputes a quote's aggregates from its items. Item subtotals
// are refreshed in place so the stored lines always match the stored
// aggregates. Recomputing over unchanged items is a no-op.
func QuoteTotals(items []domain.QuoteItem, taxRate float64) Totals {
	var t Totals
	for i := range items {
		items[i].Subtotal = ItemSubtotal(items[i].Quantity, items[i].UnitPrice, items[i].Discount)
		t.Subtotal = Round2(t.Subtotal + items[i].Subtotal)
		t.DiscountTotal = Round2(t.DiscountTotal + items[i].Discount)
	}
	t.Tax = Round2(t.Subtotal * taxRate)
	t.Total = Round2(t.Subtotal + t.Tax)
	return t
}

// ApplyTotals writes recomputed aggregates onto the quote.
func ApplyTotals(q *domain.Quote, taxRate float64) {
	t := QuoteTotals(q.Items, taxRate)
	q.Subtotal = t.Subtotal
	q.DiscountTotal = t.DiscountTotal
	q.Tax = t.Tax
	q.Total = t.Total
}

// EffectivePrice is the per-unit price of a line after spreading the line
// discount across its quantity. Used for cross-quote comparisons.
func EffectivePrice(item domain.QuoteItem) float64 {
	if item.Quantity == 0 {
		return Round2(item.UnitPrice)
	}
	return Round2(item.UnitPrice - item.Discount/float64(item.Quantity))
}

// PercentOverBest expresses how far price sits above best, in percent.
// Equal prices report exactly 0.
func PercentOverBest(price, best float64) float64 {
	if price == best {
		return 0
	}
	return (price - best) / best * 100
}
