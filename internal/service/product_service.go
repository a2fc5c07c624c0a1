package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/repository"
)

// ProductService handles product catalog business logic
type ProductService struct {
	productRepo *repository.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo *repository.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetAll returns the catalog, optionally filtered by supplier
func (s *ProductService) GetAll(ctx context.Context, supplierID *uuid.UUID) ([]domain.Product, error) {
	if supplierID != nil {
		return s.productRepo.GetBySupplier(ctx, *supplierID)
	}
	return s.productRepo.GetAll(ctx)
}

// GetByID returns a product by id
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// Create adds a product to the catalog. The supplier reference is weak and
// is not checked against the supplier collection.
func (s *ProductService) Create(ctx context.Context, req *domain.CreateProductRequest) (*domain.Product, error) {
	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		SupplierID:  req.SupplierID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)
	return product, nil
}

// Update applies a partial update; absent fields keep their stored value.
// DetachSupplier clears the supplier reference.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Cost != nil {
		product.Cost = *req.Cost
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.SupplierID != nil {
		product.SupplierID = req.SupplierID
	}
	if req.DetachSupplier {
		product.SupplierID = nil
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Delete removes a product. Quote lines keep their productId snapshot; a
// dangling reference there is allowed.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return ErrProductNotFound
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}
