package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/repository"
)

// ReconciliationService repairs cross-collection drift left behind by
// interrupted multi-write operations. Both repairs are idempotent, so the
// pass can run on a schedule or on demand.
type ReconciliationService struct {
	productRepo  *repository.ProductRepository
	supplierRepo *repository.SupplierRepository
	quoteRepo    *repository.QuoteRepository
	logger       *zap.Logger
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	productRepo *repository.ProductRepository,
	supplierRepo *repository.SupplierRepository,
	quoteRepo *repository.QuoteRepository,
	logger *zap.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		quoteRepo:    quoteRepo,
		logger:       logger,
	}
}

// Run executes one repair pass: detach products whose supplier no longer
// exists, then reject the leftover non-rejected siblings of every accepted
// quote.
func (s *ReconciliationService) Run(ctx context.Context) (*domain.ReconciliationReport, error) {
	report := &domain.ReconciliationReport{}

	detached, err := s.detachOrphanedProducts(ctx)
	if err != nil {
		return nil, err
	}
	report.DetachedProducts = detached

	rejected, err := s.rejectStaleSiblings(ctx)
	if err != nil {
		return nil, err
	}
	report.RejectedQuotes = rejected

	if report.DetachedProducts > 0 || report.RejectedQuotes > 0 {
		s.logger.Info("Reconciliation pass repaired drift",
			zap.Int("detached_products", report.DetachedProducts),
			zap.Int("rejected_quotes", report.RejectedQuotes),
		)
	}
	return report, nil
}

func (s *ReconciliationService) detachOrphanedProducts(ctx context.Context) (int, error) {
	suppliers, err := s.supplierRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list suppliers: %w", err)
	}
	known := make(map[uuid.UUID]struct{}, len(suppliers))
	for _, sup := range suppliers {
		known[sup.ID] = struct{}{}
	}

	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list products: %w", err)
	}

	detached := 0
	for i := range products {
		if products[i].SupplierID == nil {
			continue
		}
		if _, ok := known[*products[i].SupplierID]; ok {
			continue
		}
		products[i].SupplierID = nil
		if err := s.productRepo.Update(ctx, &products[i]); err != nil {
			s.logger.Warn("Failed to detach orphaned product",
				zap.String("product_id", products[i].ID.String()),
				zap.Error(err),
			)
			continue
		}
		detached++
	}
	return detached, nil
}

func (s *ReconciliationService) rejectStaleSiblings(ctx context.Context) (int, error) {
	quotes, err := s.quoteRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list quotes: %w", err)
	}

	acceptedByClient := make(map[uuid.UUID]uuid.UUID)
	for _, q := range quotes {
		if q.Status == domain.QuoteStatusAccepted {
			acceptedByClient[q.ClientID] = q.ID
		}
	}

	rejected := 0
	for clientID, acceptedID := range acceptedByClient {
		for _, sibling := range domain.QuotesToReject(clientID, acceptedID, quotes) {
			if sibling.Status == domain.QuoteStatusAccepted {
				// Two accepted quotes for one client; keep both rather than
				// guess which acceptance was intended.
				continue
			}
			sibling.Status = domain.QuoteStatusRejected
			if err := s.quoteRepo.Update(ctx, &sibling); err != nil {
				s.logger.Warn("Failed to reject stale sibling quote",
					zap.String("quote_id", sibling.ID.String()),
					zap.Error(err),
				)
				continue
			}
			rejected++
		}
	}
	return rejected, nil
}
