// Package seed inserts sample data on first start so a fresh install is not
// an empty screen. Quotes are never seeded.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/repository"
)

// Seeder inserts one sample entity per empty collection
type Seeder struct {
	clientRepo   *repository.ClientRepository
	productRepo  *repository.ProductRepository
	supplierRepo *repository.SupplierRepository
	logger       *zap.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(
	clientRepo *repository.ClientRepository,
	productRepo *repository.ProductRepository,
	supplierRepo *repository.SupplierRepository,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		clientRepo:   clientRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// Run seeds each empty collection. Non-empty collections are left alone, so
// repeated starts never duplicate data.
func (s *Seeder) Run(ctx context.Context) error {
	clients, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check clients for seeding: %w", err)
	}
	if len(clients) == 0 {
		client := &domain.Client{
			Name:    "Sample Client Ltd",
			Email:   "contact@sampleclient.example",
			Phone:   "+34 600 000 001",
			Address: "1 Example Street",
			Notes:   "Seeded on first start",
		}
		if err := s.clientRepo.Create(ctx, client); err != nil {
			return fmt.Errorf("failed to seed client: %w", err)
		}
		s.logger.Info("Seeded sample client", zap.String("client_id", client.ID.String()))
	}

	suppliers, err := s.supplierRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check suppliers for seeding: %w", err)
	}
	if len(suppliers) == 0 {
		supplier := &domain.Supplier{
			Name:    "Sample Supplier SA",
			Contact: "Sales Desk",
			Email:   "sales@samplesupplier.example",
			Phone:   "+34 600 000 002",
			Address: "2 Example Avenue",
		}
		if err := s.supplierRepo.Create(ctx, supplier); err != nil {
			return fmt.Errorf("failed to seed supplier: %w", err)
		}
		s.logger.Info("Seeded sample supplier", zap.String("supplier_id", supplier.ID.String()))
	}

	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check products for seeding: %w", err)
	}
	if len(products) == 0 {
		product := &domain.Product{
			Name:        "Sample Product",
			Description: "Starter catalog entry",
			Category:    "General",
			Price:       99.9,
			Cost:        60,
			Stock:       10,
		}
		if err := s.productRepo.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to seed product: %w", err)
		}
		s.logger.Info("Seeded sample product", zap.String("product_id", product.ID.String()))
	}

	return nil
}
