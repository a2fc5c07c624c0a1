package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/pricing"
	"github.com/gestorcrm/quotes-api/internal/repository"
)

// QuoteService handles quote authoring, item edits and the acceptance
// lifecycle.
type QuoteService struct {
	quoteRepo   *repository.QuoteRepository
	productRepo *repository.ProductRepository
	taxRate     float64
	logger      *zap.Logger
}

// NewQuoteService creates a new quote service. The tax rate is taken as
// given; a zero rate means tax-free quoting, not "use the default".
func NewQuoteService(quoteRepo *repository.QuoteRepository, productRepo *repository.ProductRepository, taxRate float64, logger *zap.Logger) *QuoteService {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		productRepo: productRepo,
		taxRate:     taxRate,
		logger:      logger,
	}
}

// GetAll returns all quotes, optionally filtered by client
func (s *QuoteService) GetAll(ctx context.Context, clientID *uuid.UUID) ([]domain.Quote, error) {
	if clientID != nil {
		return s.quoteRepo.GetByClient(ctx, *clientID)
	}
	return s.quoteRepo.GetAll(ctx)
}

// GetByID returns a quote by id
func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return quote, nil
}

// Create authors a new quote. Date defaults to now, status to draft; item
// unit prices without an explicit value snapshot the current product price.
func (s *QuoteService) Create(ctx context.Context, req *domain.CreateQuoteRequest) (*domain.Quote, error) {
	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}
	if req.ValidUntil.Before(date) {
		return nil, ErrInvalidValidUntil
	}

	status := req.Status
	if status == "" {
		status = domain.QuoteStatusDraft
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	quote := &domain.Quote{
		ClientID:   req.ClientID,
		Date:       date,
		ValidUntil: req.ValidUntil,
		Status:     status,
		Notes:      req.Notes,
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	quote.Items = items
	pricing.ApplyTotals(quote, s.taxRate)

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	s.logger.Info("Quote created",
		zap.String("quote_id", quote.ID.String()),
		zap.String("client_id", quote.ClientID.String()),
		zap.Float64("total", quote.Total),
	)
	return quote, nil
}

// Update applies a partial update; absent fields keep their stored value.
// A provided item list replaces all lines and recomputes the aggregates.
// Status changes here carry no side effects; acceptance goes through Accept.
func (s *QuoteService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateQuoteRequest) (*domain.Quote, error) {
	quote, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClientID != nil {
		quote.ClientID = *req.ClientID
	}
	if req.Date != nil {
		quote.Date = *req.Date
	}
	if req.ValidUntil != nil {
		quote.ValidUntil = *req.ValidUntil
	}
	if quote.ValidUntil.Before(quote.Date) {
		return nil, ErrInvalidValidUntil
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		quote.Status = *req.Status
	}
	if req.Notes != nil {
		quote.Notes = *req.Notes
	}
	if req.Items != nil {
		items, err := s.buildItems(ctx, *req.Items)
		if err != nil {
			return nil, err
		}
		quote.Items = items
	}
	pricing.ApplyTotals(quote, s.taxRate)

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}
	return quote, nil
}

// Delete removes a quote
func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.quoteRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	if !deleted {
		return ErrQuoteNotFound
	}

	s.logger.Info("Quote deleted", zap.String("quote_id", id.String()))
	return nil
}

// Accept marks the quote accepted and rejects every other non-rejected
// quote of the same client. Each rejection persists individually; a failure
// mid-cascade is logged and the reconciliation pass converges the rest.
// Accepting an already-accepted quote re-runs the cascade and is a no-op
// when the siblings are already rejected.
func (s *QuoteService) Accept(ctx context.Context, id uuid.UUID) (*domain.AcceptQuoteResponse, error) {
	quote, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	quote.Status = domain.QuoteStatusAccepted
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to accept quote: %w", err)
	}

	all, err := s.quoteRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes for rejection cascade: %w", err)
	}

	rejected := []uuid.UUID{}
	for _, sibling := range domain.QuotesToReject(quote.ClientID, quote.ID, all) {
		sibling.Status = domain.QuoteStatusRejected
		if err := s.quoteRepo.Update(ctx, &sibling); err != nil {
			s.logger.Warn("Failed to reject sibling quote",
				zap.String("quote_id", sibling.ID.String()),
				zap.Error(err),
			)
			continue
		}
		rejected = append(rejected, sibling.ID)
	}

	s.logger.Info("Quote accepted",
		zap.String("quote_id", quote.ID.String()),
		zap.String("client_id", quote.ClientID.String()),
		zap.Int("rejected_siblings", len(rejected)),
	)
	return &domain.AcceptQuoteResponse{Quote: quote, RejectedQuoteIDs: rejected}, nil
}

// AddItem appends a line and persists it together with the recomputed
// aggregates in a single write.
func (s *QuoteService) AddItem(ctx context.Context, quoteID uuid.UUID, req *domain.QuoteItemRequest) (*domain.Quote, error) {
	quote, err := s.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	item, err := s.buildItem(ctx, req)
	if err != nil {
		return nil, err
	}
	quote.Items = append(quote.Items, *item)
	pricing.ApplyTotals(quote, s.taxRate)

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to add quote item: %w", err)
	}
	return quote, nil
}

// UpdateItem edits a line in place; absent fields keep their stored value.
// A product change without an explicit unit price re-snapshots the price.
func (s *QuoteService) UpdateItem(ctx context.Context, quoteID, itemID uuid.UUID, req *domain.UpdateQuoteItemRequest) (*domain.Quote, error) {
	quote, err := s.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	var item *domain.QuoteItem
	for i := range quote.Items {
		if quote.Items[i].ID == itemID {
			item = &quote.Items[i]
			break
		}
	}
	if item == nil {
		return nil, ErrQuoteItemNotFound
	}

	if req.ProductID != nil && *req.ProductID != item.ProductID {
		item.ProductID = *req.ProductID
		if req.UnitPrice == nil {
			price, err := s.snapshotPrice(ctx, *req.ProductID)
			if err != nil {
				return nil, err
			}
			item.UnitPrice = price
		}
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.Discount != nil {
		item.Discount = *req.Discount
	}
	pricing.ApplyTotals(quote, s.taxRate)

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to update quote item: %w", err)
	}
	return quote, nil
}

// RemoveItem deletes a line and persists the recomputed aggregates in the
// same write.
func (s *QuoteService) RemoveItem(ctx context.Context, quoteID, itemID uuid.UUID) (*domain.Quote, error) {
	quote, err := s.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	kept := quote.Items[:0]
	found := false
	for _, item := range quote.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, ErrQuoteItemNotFound
	}
	quote.Items = kept
	pricing.ApplyTotals(quote, s.taxRate)

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to remove quote item: %w", err)
	}
	return quote, nil
}

func (s *QuoteService) buildItems(ctx context.Context, reqs []domain.QuoteItemRequest) ([]domain.QuoteItem, error) {
	items := make([]domain.QuoteItem, 0, len(reqs))
	for i := range reqs {
		item, err := s.buildItem(ctx, &reqs[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func (s *QuoteService) buildItem(ctx context.Context, req *domain.QuoteItemRequest) (*domain.QuoteItem, error) {
	unitPrice := 0.0
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	} else {
		price, err := s.snapshotPrice(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}
		unitPrice = price
	}

	return &domain.QuoteItem{
		ID:        uuid.New(),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: unitPrice,
		Discount:  req.Discount,
		Subtotal:  pricing.ItemSubtotal(req.Quantity, unitPrice, req.Discount),
	}, nil
}

// snapshotPrice copies the current catalog price into the line. The line
// keeps this value even if the product changes or disappears later.
func (s *QuoteService) snapshotPrice(ctx context.Context, productID uuid.UUID) (float64, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, ErrProductNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to snapshot product price: %w", err)
	}
	return product.Price, nil
}
