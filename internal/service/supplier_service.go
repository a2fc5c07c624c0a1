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

// SupplierService handles supplier business logic, including the
// referential-integrity step on deletion.
type SupplierService struct {
	supplierRepo *repository.SupplierRepository
	productRepo  *repository.ProductRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo *repository.SupplierRepository, productRepo *repository.ProductRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// GetAll returns all suppliers
func (s *SupplierService) GetAll(ctx context.Context) ([]domain.Supplier, error) {
	return s.supplierRepo.GetAll(ctx)
}

// GetByID returns a supplier by id
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return supplier, nil
}

// Create registers a new supplier
func (s *SupplierService) Create(ctx context.Context, req *domain.CreateSupplierRequest) (*domain.Supplier, error) {
	supplier := &domain.Supplier{
		Name:    req.Name,
		Contact: req.Contact,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	s.logger.Info("Supplier created",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("name", supplier.Name),
	)
	return supplier, nil
}

// Update applies a partial update; absent fields keep their stored value
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateSupplierRequest) (*domain.Supplier, error) {
	supplier, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Contact != nil {
		supplier.Contact = *req.Contact
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.Notes != nil {
		supplier.Notes = *req.Notes
	}
	if req.ProductIDs != nil {
		supplier.ProductIDs = req.ProductIDs
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return supplier, nil
}

// Delete detaches every product referencing the supplier, then removes the
// supplier. Detaches persist one by one; a failure mid-way aborts before the
// supplier row is touched, so the operation stays retryable and the earlier
// detaches are simply re-observed as already clear.
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	products, err := s.productRepo.GetBySupplier(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list supplier products: %w", err)
	}
	for i := range products {
		products[i].SupplierID = nil
		if err := s.productRepo.Update(ctx, &products[i]); err != nil {
			s.logger.Error("Failed to detach product from supplier",
				zap.String("product_id", products[i].ID.String()),
				zap.String("supplier_id", id.String()),
				zap.Error(err),
			)
			return fmt.Errorf("failed to detach product %s: %w", products[i].ID, err)
		}
	}

	deleted, err := s.supplierRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if !deleted {
		return ErrSupplierNotFound
	}

	s.logger.Info("Supplier deleted",
		zap.String("supplier_id", id.String()),
		zap.Int("detached_products", len(products)),
	)
	return nil
}
