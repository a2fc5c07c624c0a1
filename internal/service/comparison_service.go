package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/comparison"
	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/pricing"
	"github.com/gestorcrm/quotes-api/internal/repository"
)

// ComparisonService assembles side-by-side comparison documents from quote
// snapshots. It never writes.
type ComparisonService struct {
	quoteRepo *repository.QuoteRepository
	logger    *zap.Logger
}

// NewComparisonService creates a new comparison service
func NewComparisonService(quoteRepo *repository.QuoteRepository, logger *zap.Logger) *ComparisonService {
	return &ComparisonService{
		quoteRepo: quoteRepo,
		logger:    logger,
	}
}

// Compare loads the selected quotes and builds the comparison document:
// per-quote summaries with cheapest-by-total flags and one product-matrix
// row per product any quote includes.
func (s *ComparisonService) Compare(ctx context.Context, quoteIDs []uuid.UUID) (*domain.QuoteComparison, error) {
	quotes := make([]domain.Quote, 0, len(quoteIDs))
	for _, id := range quoteIDs {
		quote, err := s.quoteRepo.GetByID(ctx, id)
		if err != nil {
			return nil, ErrQuoteNotFound
		}
		quotes = append(quotes, *quote)
	}

	cheapest := make(map[uuid.UUID]bool)
	for _, q := range comparison.CheapestByTotal(quotes) {
		cheapest[q.ID] = true
	}

	doc := &domain.QuoteComparison{
		Quotes:   make([]domain.QuoteComparisonSummary, 0, len(quotes)),
		Products: []domain.ProductComparisonRow{},
	}
	for _, q := range quotes {
		doc.Quotes = append(doc.Quotes, domain.QuoteComparisonSummary{
			QuoteID:       q.ID,
			ClientID:      q.ClientID,
			Status:        q.Status,
			Date:          q.Date,
			ValidUntil:    q.ValidUntil,
			ItemCount:     len(q.Items),
			Subtotal:      q.Subtotal,
			DiscountTotal: q.DiscountTotal,
			Tax:           q.Tax,
			Total:         q.Total,
			Cheapest:      cheapest[q.ID],
		})
	}

	for _, productID := range comparison.ProductUnion(quotes) {
		best, _ := comparison.BestPriceForProduct(quotes, productID)
		row := domain.ProductComparisonRow{
			ProductID: productID,
			BestPrice: best,
			Entries:   make([]domain.ProductComparisonEntry, 0, len(quotes)),
		}
		for i := range quotes {
			entry := domain.ProductComparisonEntry{QuoteID: quotes[i].ID}
			if item, ok := quotes[i].ItemForProduct(productID); ok {
				price := pricing.EffectivePrice(*item)
				entry.Included = true
				entry.EffectivePrice = price
				entry.Quantity = item.Quantity
				entry.BestPrice = price == best
				entry.PercentOverBest = pricing.PercentOverBest(price, best)
			}
			row.Entries = append(row.Entries, entry)
		}
		doc.Products = append(doc.Products, row)
	}

	return doc, nil
}
