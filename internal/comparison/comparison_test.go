package comparison

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorcrm/quotes-api/internal/domain"
)

func quoteWithItems(items ...domain.QuoteItem) domain.Quote {
	return domain.Quote{ID: uuid.New(), Items: items}
}

func TestProductUnionKeepsFirstAppearanceOrder(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()
	p3 := uuid.New()

	quotes := []domain.Quote{
		quoteWithItems(
			domain.QuoteItem{ID: uuid.New(), ProductID: p1},
			domain.QuoteItem{ID: uuid.New(), ProductID: p2},
		),
		quoteWithItems(
			domain.QuoteItem{ID: uuid.New(), ProductID: p2},
			domain.QuoteItem{ID: uuid.New(), ProductID: p3},
		),
	}

	union := ProductUnion(quotes)

	require.Len(t, union, 3)
	assert.Equal(t, []uuid.UUID{p1, p2, p3}, union)
}

func TestProductUnionEmpty(t *testing.T) {
	assert.Empty(t, ProductUnion(nil))
	assert.Empty(t, ProductUnion([]domain.Quote{quoteWithItems()}))
}

func TestBestPriceForProduct(t *testing.T) {
	productID := uuid.New()

	quotes := []domain.Quote{
		// effective 10 - 20/10 = 8
		quoteWithItems(domain.QuoteItem{ID: uuid.New(), ProductID: productID, Quantity: 10, UnitPrice: 10, Discount: 20}),
		// effective 9
		quoteWithItems(domain.QuoteItem{ID: uuid.New(), ProductID: productID, Quantity: 4, UnitPrice: 9}),
	}

	best, ok := BestPriceForProduct(quotes, productID)

	require.True(t, ok)
	assert.Equal(t, 8.0, best)
}

func TestBestPriceForProductMissing(t *testing.T) {
	quotes := []domain.Quote{
		quoteWithItems(domain.QuoteItem{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1, UnitPrice: 5}),
	}

	_, ok := BestPriceForProduct(quotes, uuid.New())
	assert.False(t, ok)
}

func TestCheapestByTotal(t *testing.T) {
	cheap := domain.Quote{ID: uuid.New(), Total: 100}
	expensive := domain.Quote{ID: uuid.New(), Total: 250}

	cheapest := CheapestByTotal([]domain.Quote{expensive, cheap})

	require.Len(t, cheapest, 1)
	assert.Equal(t, cheap.ID, cheapest[0].ID)
}

func TestCheapestByTotalTies(t *testing.T) {
	a := domain.Quote{ID: uuid.New(), Total: 100}
	b := domain.Quote{ID: uuid.New(), Total: 100}
	c := domain.Quote{ID: uuid.New(), Total: 180}

	cheapest := CheapestByTotal([]domain.Quote{a, b, c})

	require.Len(t, cheapest, 2)
	assert.Equal(t, a.ID, cheapest[0].ID)
	assert.Equal(t, b.ID, cheapest[1].ID)
}

func TestCheapestByTotalEmpty(t *testing.T) {
	assert.Empty(t, CheapestByTotal(nil))
}
