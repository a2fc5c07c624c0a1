package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorcrm/quotes-api/internal/domain"
)

func TestItemSubtotal(t *testing.T) {
	assert.Equal(t, 270.0, ItemSubtotal(3, 100, 30))
	assert.Equal(t, 100.0, ItemSubtotal(1, 100, 0))
	assert.Equal(t, 19.98, ItemSubtotal(2, 9.99, 0))
}

func TestItemSubtotalAllowsNegative(t *testing.T) {
	// Discount above the gross amount is not clamped
	assert.Equal(t, -50.0, ItemSubtotal(1, 100, 150))
}

func TestQuoteTotals(t *testing.T) {
	items := []domain.QuoteItem{
		{Quantity: 3, UnitPrice: 100, Discount: 30},
	}

	totals := QuoteTotals(items, DefaultTaxRate)

	assert.Equal(t, 270.0, totals.Subtotal)
	assert.Equal(t, 30.0, totals.DiscountTotal)
	assert.Equal(t, 56.7, totals.Tax)
	assert.Equal(t, 326.7, totals.Total)
	assert.Equal(t, 270.0, items[0].Subtotal)
}

func TestQuoteTotalsIdempotent(t *testing.T) {
	items := []domain.QuoteItem{
		{Quantity: 2, UnitPrice: 19.99, Discount: 5},
		{Quantity: 7, UnitPrice: 3.33, Discount: 0.5},
	}

	first := QuoteTotals(items, DefaultTaxRate)
	second := QuoteTotals(items, DefaultTaxRate)

	assert.Equal(t, first, second)
}

func TestQuoteTotalsEmpty(t *testing.T) {
	totals := QuoteTotals(nil, DefaultTaxRate)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.Tax)
	assert.Zero(t, totals.Total)
}

func TestApplyTotals(t *testing.T) {
	quote := &domain.Quote{
		Items: []domain.QuoteItem{
			{Quantity: 3, UnitPrice: 100, Discount: 30},
		},
	}

	ApplyTotals(quote, DefaultTaxRate)

	require.Equal(t, 270.0, quote.Subtotal)
	require.Equal(t, 56.7, quote.Tax)
	require.Equal(t, 326.7, quote.Total)
	require.Equal(t, 30.0, quote.DiscountTotal)
}

func TestEffectivePrice(t *testing.T) {
	// 10 - 20/10 = 8 per unit
	item := domain.QuoteItem{Quantity: 10, UnitPrice: 10, Discount: 20}
	assert.Equal(t, 8.0, EffectivePrice(item))

	noDiscount := domain.QuoteItem{Quantity: 4, UnitPrice: 9, Discount: 0}
	assert.Equal(t, 9.0, EffectivePrice(noDiscount))
}

func TestEffectivePriceZeroQuantity(t *testing.T) {
	item := domain.QuoteItem{Quantity: 0, UnitPrice: 10, Discount: 20}
	assert.Equal(t, 10.0, EffectivePrice(item))
}

func TestPercentOverBest(t *testing.T) {
	assert.Equal(t, 12.5, PercentOverBest(9, 8))
	assert.Equal(t, 0.0, PercentOverBest(8, 8))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 56.7, Round2(56.7000000001))
	assert.Equal(t, 2.68, Round2(2.675000001))
	assert.Equal(t, -1.23, Round2(-1.234))
}
