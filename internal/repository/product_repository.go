package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/storage"
)

// ProductRepository persists the product catalog
type ProductRepository struct {
	coll   collection[domain.Product]
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(store storage.Store, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		coll:   newCollection[domain.Product](storage.KeyProducts, store, logger),
		logger: logger,
	}
}

// GetAll returns all products
func (r *ProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	return r.coll.load(ctx), nil
}

// GetByID returns the product with the given id or domain.ErrNotFound
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	for _, p := range r.coll.load(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetBySupplier returns the products referencing the given supplier
func (r *ProductRepository) GetBySupplier(ctx context.Context, supplierID uuid.UUID) ([]domain.Product, error) {
	var matched []domain.Product
	for _, p := range r.coll.load(ctx) {
		if p.SupplierID != nil && *p.SupplierID == supplierID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Create assigns a fresh id, appends the product and persists the collection
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	product.ID = uuid.New()

	products := r.coll.load(ctx)
	products = append(products, *product)
	return r.coll.save(ctx, products)
}

// Update replaces the stored product with the same id
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	products := r.coll.load(ctx)
	for i := range products {
		if products[i].ID == product.ID {
			products[i] = *product
			return r.coll.save(ctx, products)
		}
	}
	return domain.ErrNotFound
}

// Delete removes the product with the given id. Returns false when the id
// was not present.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	products := r.coll.load(ctx)
	kept := products[:0]
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return false, nil
	}
	if err := r.coll.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}
