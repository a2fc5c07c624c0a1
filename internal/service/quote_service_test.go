package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/pricing"
	"github.com/gestorcrm/quotes-api/internal/repository"
	"github.com/gestorcrm/quotes-api/internal/storage"
)

type quoteFixture struct {
	svc         *QuoteService
	quoteRepo   *repository.QuoteRepository
	productRepo *repository.ProductRepository
}

func newQuoteFixture(t *testing.T) *quoteFixture {
	t.Helper()
	store := storage.NewMemoryStore()
	logger := zap.NewNop()
	quoteRepo := repository.NewQuoteRepository(store, logger)
	productRepo := repository.NewProductRepository(store, logger)
	return &quoteFixture{
		svc:         NewQuoteService(quoteRepo, productRepo, pricing.DefaultTaxRate, logger),
		quoteRepo:   quoteRepo,
		productRepo: productRepo,
	}
}

func (f *quoteFixture) createQuote(t *testing.T, clientID uuid.UUID, status domain.QuoteStatus) *domain.Quote {
	t.Helper()
	quote := &domain.Quote{
		ClientID:   clientID,
		Date:       time.Now().UTC(),
		ValidUntil: time.Now().UTC().Add(30 * 24 * time.Hour),
		Status:     status,
	}
	require.NoError(t, f.quoteRepo.Create(context.Background(), quote))
	return quote
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateQuoteComputesTotals(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	product := &domain.Product{Name: "Widget", Price: 100}
	require.NoError(t, f.productRepo.Create(ctx, product))

	quote, err := f.svc.Create(ctx, &domain.CreateQuoteRequest{
		ClientID:   uuid.New(),
		ValidUntil: time.Now().UTC().Add(24 * time.Hour),
		Items: []domain.QuoteItemRequest{
			{ProductID: product.ID, Quantity: 3, UnitPrice: floatPtr(100), Discount: 30},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.QuoteStatusDraft, quote.Status)
	assert.Equal(t, 270.0, quote.Subtotal)
	assert.Equal(t, 56.7, quote.Tax)
	assert.Equal(t, 326.7, quote.Total)
	assert.Equal(t, 30.0, quote.DiscountTotal)
	assert.NotEqual(t, uuid.Nil, quote.Items[0].ID)
}

func TestCreateQuoteWithZeroTaxRate(t *testing.T) {
	store := storage.NewMemoryStore()
	logger := zap.NewNop()
	quoteRepo := repository.NewQuoteRepository(store, logger)
	productRepo := repository.NewProductRepository(store, logger)
	svc := NewQuoteService(quoteRepo, productRepo, 0, logger)
	ctx := context.Background()

	product := &domain.Product{Name: "Widget", Price: 100}
	require.NoError(t, productRepo.Create(ctx, product))

	quote, err := svc.Create(ctx, &domain.CreateQuoteRequest{
		ClientID:   uuid.New(),
		ValidUntil: time.Now().UTC().Add(24 * time.Hour),
		Items: []domain.QuoteItemRequest{
			{ProductID: product.ID, Quantity: 2, UnitPrice: floatPtr(100)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 200.0, quote.Subtotal)
	assert.Zero(t, quote.Tax)
	assert.Equal(t, 200.0, quote.Total)
}

func TestCreateQuoteSnapshotsProductPrice(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	product := &domain.Product{Name: "Widget", Price: 42.5}
	require.NoError(t, f.productRepo.Create(ctx, product))

	quote, err := f.svc.Create(ctx, &domain.CreateQuoteRequest{
		ClientID:   uuid.New(),
		ValidUntil: time.Now().UTC().Add(24 * time.Hour),
		Items: []domain.QuoteItemRequest{
			{ProductID: product.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, quote.Items, 1)
	assert.Equal(t, 42.5, quote.Items[0].UnitPrice)

	// Catalog changes do not touch the stored snapshot
	product.Price = 99
	require.NoError(t, f.productRepo.Update(ctx, product))

	loaded, err := f.svc.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 42.5, loaded.Items[0].UnitPrice)
}

func TestCreateQuoteUnknownProduct(t *testing.T) {
	f := newQuoteFixture(t)

	_, err := f.svc.Create(context.Background(), &domain.CreateQuoteRequest{
		ClientID:   uuid.New(),
		ValidUntil: time.Now().UTC().Add(24 * time.Hour),
		Items: []domain.QuoteItemRequest{
			{ProductID: uuid.New(), Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateQuoteRejectsValidUntilBeforeDate(t *testing.T) {
	f := newQuoteFixture(t)
	date := time.Now().UTC()

	_, err := f.svc.Create(context.Background(), &domain.CreateQuoteRequest{
		ClientID:   uuid.New(),
		Date:       &date,
		ValidUntil: date.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidValidUntil)
}

func TestAcceptCascadesRejection(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()
	clientID := uuid.New()

	q1 := f.createQuote(t, clientID, domain.QuoteStatusSent)
	q2 := f.createQuote(t, clientID, domain.QuoteStatusDraft)
	q3 := f.createQuote(t, clientID, domain.QuoteStatusRejected)
	other := f.createQuote(t, uuid.New(), domain.QuoteStatusSent)

	result, err := f.svc.Accept(ctx, q1.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.QuoteStatusAccepted, result.Quote.Status)
	require.Len(t, result.RejectedQuoteIDs, 1)
	assert.Equal(t, q2.ID, result.RejectedQuoteIDs[0])

	loaded2, err := f.svc.GetByID(ctx, q2.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusRejected, loaded2.Status)

	loaded3, err := f.svc.GetByID(ctx, q3.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusRejected, loaded3.Status)

	loadedOther, err := f.svc.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusSent, loadedOther.Status)
}

func TestAcceptTwiceIsIdempotent(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()
	clientID := uuid.New()

	q1 := f.createQuote(t, clientID, domain.QuoteStatusSent)
	f.createQuote(t, clientID, domain.QuoteStatusDraft)

	first, err := f.svc.Accept(ctx, q1.ID)
	require.NoError(t, err)
	assert.Len(t, first.RejectedQuoteIDs, 1)

	second, err := f.svc.Accept(ctx, q1.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusAccepted, second.Quote.Status)
	assert.Empty(t, second.RejectedQuoteIDs)
}

func TestAcceptNotFound(t *testing.T) {
	f := newQuoteFixture(t)

	_, err := f.svc.Accept(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestAddItemRecomputesTotals(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	product := &domain.Product{Name: "Widget", Price: 100}
	require.NoError(t, f.productRepo.Create(ctx, product))

	quote := f.createQuote(t, uuid.New(), domain.QuoteStatusDraft)

	updated, err := f.svc.AddItem(ctx, quote.ID, &domain.QuoteItemRequest{
		ProductID: product.ID,
		Quantity:  3,
		Discount:  30,
	})
	require.NoError(t, err)

	assert.Equal(t, 270.0, updated.Subtotal)
	assert.Equal(t, 326.7, updated.Total)

	// Items and totals came from the same persisted write
	loaded, err := f.svc.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 1)
	assert.Equal(t, 326.7, loaded.Total)
}

func TestUpdateItemRecomputesTotals(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	product := &domain.Product{Name: "Widget", Price: 100}
	require.NoError(t, f.productRepo.Create(ctx, product))

	quote := f.createQuote(t, uuid.New(), domain.QuoteStatusDraft)
	withItem, err := f.svc.AddItem(ctx, quote.ID, &domain.QuoteItemRequest{
		ProductID: product.ID,
		Quantity:  1,
		UnitPrice: floatPtr(100),
	})
	require.NoError(t, err)
	itemID := withItem.Items[0].ID

	qty := 3
	updated, err := f.svc.UpdateItem(ctx, quote.ID, itemID, &domain.UpdateQuoteItemRequest{
		Quantity: &qty,
		Discount: floatPtr(30),
	})
	require.NoError(t, err)

	assert.Equal(t, 270.0, updated.Items[0].Subtotal)
	assert.Equal(t, 326.7, updated.Total)
}

func TestUpdateItemNotFound(t *testing.T) {
	f := newQuoteFixture(t)
	quote := f.createQuote(t, uuid.New(), domain.QuoteStatusDraft)

	qty := 2
	_, err := f.svc.UpdateItem(context.Background(), quote.ID, uuid.New(), &domain.UpdateQuoteItemRequest{Quantity: &qty})
	assert.ErrorIs(t, err, ErrQuoteItemNotFound)
}

func TestRemoveItemRecomputesTotals(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	product := &domain.Product{Name: "Widget", Price: 50}
	require.NoError(t, f.productRepo.Create(ctx, product))

	quote := f.createQuote(t, uuid.New(), domain.QuoteStatusDraft)
	withItem, err := f.svc.AddItem(ctx, quote.ID, &domain.QuoteItemRequest{
		ProductID: product.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	updated, err := f.svc.RemoveItem(ctx, quote.ID, withItem.Items[0].ID)
	require.NoError(t, err)

	assert.Empty(t, updated.Items)
	assert.Zero(t, updated.Subtotal)
	assert.Zero(t, updated.Total)
}

func TestUpdateQuoteReplacesItems(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	product := &domain.Product{Name: "Widget", Price: 10}
	require.NoError(t, f.productRepo.Create(ctx, product))

	quote := f.createQuote(t, uuid.New(), domain.QuoteStatusDraft)
	_, err := f.svc.AddItem(ctx, quote.ID, &domain.QuoteItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	items := []domain.QuoteItemRequest{
		{ProductID: product.ID, Quantity: 5, UnitPrice: floatPtr(10)},
	}
	updated, err := f.svc.Update(ctx, quote.ID, &domain.UpdateQuoteRequest{Items: &items})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, 50.0, updated.Subtotal)
}

func TestGetAllFiltersByClient(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()
	clientID := uuid.New()

	f.createQuote(t, clientID, domain.QuoteStatusDraft)
	f.createQuote(t, uuid.New(), domain.QuoteStatusDraft)

	mine, err := f.svc.GetAll(ctx, &clientID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := f.svc.GetAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
