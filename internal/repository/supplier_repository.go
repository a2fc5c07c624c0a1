package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/storage"
)

// SupplierRepository persists the supplier collection
type SupplierRepository struct {
	coll   collection[domain.Supplier]
	logger *zap.Logger
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(store storage.Store, logger *zap.Logger) *SupplierRepository {
	return &SupplierRepository{
		coll:   newCollection[domain.Supplier](storage.KeySuppliers, store, logger),
		logger: logger,
	}
}

// GetAll returns all suppliers
func (r *SupplierRepository) GetAll(ctx context.Context) ([]domain.Supplier, error) {
	return r.coll.load(ctx), nil
}

// GetByID returns the supplier with the given id or domain.ErrNotFound
func (r *SupplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	for _, s := range r.coll.load(ctx) {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create assigns a fresh id, appends the supplier and persists the collection
func (r *SupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	supplier.ID = uuid.New()

	suppliers := r.coll.load(ctx)
	suppliers = append(suppliers, *supplier)
	return r.coll.save(ctx, suppliers)
}

// Update replaces the stored supplier with the same id
func (r *SupplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	suppliers := r.coll.load(ctx)
	for i := range suppliers {
		if suppliers[i].ID == supplier.ID {
			suppliers[i] = *supplier
			return r.coll.save(ctx, suppliers)
		}
	}
	return domain.ErrNotFound
}

// Delete removes the supplier with the given id. Returns false when the id
// was not present.
func (r *SupplierRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	suppliers := r.coll.load(ctx)
	kept := suppliers[:0]
	found := false
	for _, s := range suppliers {
		if s.ID == id {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return false, nil
	}
	if err := r.coll.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}
