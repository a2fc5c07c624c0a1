package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/storage"
)

// QuoteRepository persists the quote collection
type QuoteRepository struct {
	coll   collection[domain.Quote]
	logger *zap.Logger
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(store storage.Store, logger *zap.Logger) *QuoteRepository {
	return &QuoteRepository{
		coll:   newCollection[domain.Quote](storage.KeyQuotes, store, logger),
		logger: logger,
	}
}

// GetAll returns all quotes
func (r *QuoteRepository) GetAll(ctx context.Context) ([]domain.Quote, error) {
	return r.coll.load(ctx), nil
}

// GetByID returns the quote with the given id or domain.ErrNotFound
func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	for _, q := range r.coll.load(ctx) {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByClient returns the quotes issued to the given client
func (r *QuoteRepository) GetByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Quote, error) {
	var matched []domain.Quote
	for _, q := range r.coll.load(ctx) {
		if q.ClientID == clientID {
			matched = append(matched, q)
		}
	}
	return matched, nil
}

// Create assigns a fresh id, appends the quote and persists the collection
func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	quote.ID = uuid.New()

	quotes := r.coll.load(ctx)
	quotes = append(quotes, *quote)
	return r.coll.save(ctx, quotes)
}

// Update replaces the stored quote with the same id. The item list and the
// recomputed aggregates land in the same collection write, so a quote is
// never persisted with items and totals out of step.
func (r *QuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	quotes := r.coll.load(ctx)
	for i := range quotes {
		if quotes[i].ID == quote.ID {
			quotes[i] = *quote
			return r.coll.save(ctx, quotes)
		}
	}
	return domain.ErrNotFound
}

// Delete removes the quote with the given id. Returns false when the id
// was not present.
func (r *QuoteRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	quotes := r.coll.load(ctx)
	kept := quotes[:0]
	found := false
	for _, q := range quotes {
		if q.ID == id {
			found = true
			continue
		}
		kept = append(kept, q)
	}
	if !found {
		return false, nil
	}
	if err := r.coll.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}
