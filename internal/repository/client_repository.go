package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/storage"
)

// ClientRepository persists the client collection
type ClientRepository struct {
	coll   collection[domain.Client]
	logger *zap.Logger
}

// NewClientRepository creates a new client repository
func NewClientRepository(store storage.Store, logger *zap.Logger) *ClientRepository {
	return &ClientRepository{
		coll:   newCollection[domain.Client](storage.KeyClients, store, logger),
		logger: logger,
	}
}

// GetAll returns all clients
func (r *ClientRepository) GetAll(ctx context.Context) ([]domain.Client, error) {
	return r.coll.load(ctx), nil
}

// GetByID returns the client with the given id or domain.ErrNotFound
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	for _, c := range r.coll.load(ctx) {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create assigns a fresh id and registration time, appends the client and
// persists the collection
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	client.ID = uuid.New()
	client.RegisteredAt = time.Now().UTC()

	clients := r.coll.load(ctx)
	clients = append(clients, *client)
	return r.coll.save(ctx, clients)
}

// Update replaces the stored client with the same id
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	clients := r.coll.load(ctx)
	for i := range clients {
		if clients[i].ID == client.ID {
			clients[i] = *client
			return r.coll.save(ctx, clients)
		}
	}
	return domain.ErrNotFound
}

// Delete removes the client with the given id. Returns false when the id
// was not present; that is not an error.
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	clients := r.coll.load(ctx)
	kept := clients[:0]
	found := false
	for _, c := range clients {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return false, nil
	}
	if err := r.coll.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}
