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
	"github.com/gestorcrm/quotes-api/internal/repository"
	"github.com/gestorcrm/quotes-api/internal/storage"
)

type reconFixture struct {
	svc          *ReconciliationService
	productRepo  *repository.ProductRepository
	supplierRepo *repository.SupplierRepository
	quoteRepo    *repository.QuoteRepository
}

func newReconFixture(t *testing.T) *reconFixture {
	t.Helper()
	store := storage.NewMemoryStore()
	logger := zap.NewNop()
	productRepo := repository.NewProductRepository(store, logger)
	supplierRepo := repository.NewSupplierRepository(store, logger)
	quoteRepo := repository.NewQuoteRepository(store, logger)
	return &reconFixture{
		svc:          NewReconciliationService(productRepo, supplierRepo, quoteRepo, logger),
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		quoteRepo:    quoteRepo,
	}
}

func (f *reconFixture) addQuote(t *testing.T, clientID uuid.UUID, status domain.QuoteStatus) *domain.Quote {
	t.Helper()
	quote := &domain.Quote{
		ClientID:   clientID,
		Date:       time.Now().UTC(),
		ValidUntil: time.Now().UTC().Add(24 * time.Hour),
		Status:     status,
	}
	require.NoError(t, f.quoteRepo.Create(context.Background(), quote))
	return quote
}

func TestReconcileDetachesOrphanedProducts(t *testing.T) {
	f := newReconFixture(t)
	ctx := context.Background()

	supplier := &domain.Supplier{Name: "Live"}
	require.NoError(t, f.supplierRepo.Create(ctx, supplier))

	ghost := uuid.New()
	orphan := &domain.Product{Name: "Orphan", SupplierID: &ghost}
	require.NoError(t, f.productRepo.Create(ctx, orphan))
	attached := &domain.Product{Name: "Attached", SupplierID: &supplier.ID}
	require.NoError(t, f.productRepo.Create(ctx, attached))

	report, err := f.svc.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, report.DetachedProducts)

	loaded, err := f.productRepo.GetByID(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.SupplierID)

	still, err := f.productRepo.GetByID(ctx, attached.ID)
	require.NoError(t, err)
	assert.NotNil(t, still.SupplierID)
}

func TestReconcileRejectsStaleSiblings(t *testing.T) {
	f := newReconFixture(t)
	ctx := context.Background()
	clientID := uuid.New()

	accepted := f.addQuote(t, clientID, domain.QuoteStatusAccepted)
	stale := f.addQuote(t, clientID, domain.QuoteStatusSent)
	alreadyRejected := f.addQuote(t, clientID, domain.QuoteStatusRejected)
	otherClient := f.addQuote(t, uuid.New(), domain.QuoteStatusSent)

	report, err := f.svc.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, report.RejectedQuotes)

	loaded, err := f.quoteRepo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusRejected, loaded.Status)

	loadedAccepted, err := f.quoteRepo.GetByID(ctx, accepted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusAccepted, loadedAccepted.Status)

	loadedRejected, err := f.quoteRepo.GetByID(ctx, alreadyRejected.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusRejected, loadedRejected.Status)

	loadedOther, err := f.quoteRepo.GetByID(ctx, otherClient.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusSent, loadedOther.Status)
}

func TestReconcileIsIdempotent(t *testing.T) {
	f := newReconFixture(t)
	ctx := context.Background()
	clientID := uuid.New()

	f.addQuote(t, clientID, domain.QuoteStatusAccepted)
	f.addQuote(t, clientID, domain.QuoteStatusDraft)

	first, err := f.svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.RejectedQuotes)

	second, err := f.svc.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.RejectedQuotes)
	assert.Zero(t, second.DetachedProducts)
}
