package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/repository"
	"github.com/gestorcrm/quotes-api/internal/storage"
)

// flakyStore fails writes to a single key, simulating a persist error on
// one collection while the others stay writable.
type flakyStore struct {
	*storage.MemoryStore
	failKey string
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if key == s.failKey {
		return errors.New("write failed")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func newSupplierFixture(t *testing.T) (*SupplierService, *repository.SupplierRepository, *repository.ProductRepository) {
	t.Helper()
	store := storage.NewMemoryStore()
	logger := zap.NewNop()
	supplierRepo := repository.NewSupplierRepository(store, logger)
	productRepo := repository.NewProductRepository(store, logger)
	return NewSupplierService(supplierRepo, productRepo, logger), supplierRepo, productRepo
}

func TestSupplierDeleteDetachesProducts(t *testing.T) {
	svc, _, productRepo := newSupplierFixture(t)
	ctx := context.Background()

	supplier, err := svc.Create(ctx, &domain.CreateSupplierRequest{Name: "Metal SA"})
	require.NoError(t, err)

	p1 := &domain.Product{Name: "Sheet", SupplierID: &supplier.ID}
	require.NoError(t, productRepo.Create(ctx, p1))
	p2 := &domain.Product{Name: "Rod", SupplierID: &supplier.ID}
	require.NoError(t, productRepo.Create(ctx, p2))
	unrelatedSupplier := uuid.New()
	p3 := &domain.Product{Name: "Bolt", SupplierID: &unrelatedSupplier}
	require.NoError(t, productRepo.Create(ctx, p3))

	require.NoError(t, svc.Delete(ctx, supplier.ID))

	_, err = svc.GetByID(ctx, supplier.ID)
	assert.ErrorIs(t, err, ErrSupplierNotFound)

	loaded1, err := productRepo.GetByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded1.SupplierID)

	loaded2, err := productRepo.GetByID(ctx, p2.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded2.SupplierID)

	loaded3, err := productRepo.GetByID(ctx, p3.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded3.SupplierID)
	assert.Equal(t, unrelatedSupplier, *loaded3.SupplierID)
}

func TestSupplierDeleteAbortsWhenDetachFails(t *testing.T) {
	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	logger := zap.NewNop()
	supplierRepo := repository.NewSupplierRepository(store, logger)
	productRepo := repository.NewProductRepository(store, logger)
	svc := NewSupplierService(supplierRepo, productRepo, logger)
	ctx := context.Background()

	supplier, err := svc.Create(ctx, &domain.CreateSupplierRequest{Name: "Metal SA"})
	require.NoError(t, err)
	product := &domain.Product{Name: "Sheet", SupplierID: &supplier.ID}
	require.NoError(t, productRepo.Create(ctx, product))

	store.failKey = storage.KeyProducts

	err = svc.Delete(ctx, supplier.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSupplierNotFound)

	// Supplier must survive so the delete can be retried
	_, err = svc.GetByID(ctx, supplier.ID)
	require.NoError(t, err)
	loaded, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.SupplierID)
	assert.Equal(t, supplier.ID, *loaded.SupplierID)

	// Retry succeeds once the store recovers
	store.failKey = ""
	require.NoError(t, svc.Delete(ctx, supplier.ID))

	_, err = svc.GetByID(ctx, supplier.ID)
	assert.ErrorIs(t, err, ErrSupplierNotFound)
	loaded, err = productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.SupplierID)
}

func TestSupplierDeleteNotFound(t *testing.T) {
	svc, _, _ := newSupplierFixture(t)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestSupplierUpdatePartial(t *testing.T) {
	svc, _, _ := newSupplierFixture(t)
	ctx := context.Background()

	supplier, err := svc.Create(ctx, &domain.CreateSupplierRequest{
		Name:  "Metal SA",
		Email: "old@metal.example",
	})
	require.NoError(t, err)

	newEmail := "new@metal.example"
	updated, err := svc.Update(ctx, supplier.ID, &domain.UpdateSupplierRequest{Email: &newEmail})
	require.NoError(t, err)

	assert.Equal(t, "Metal SA", updated.Name)
	assert.Equal(t, newEmail, updated.Email)
}
