// Package storage provides the key-value store that persists every entity
// collection as a single serialized blob under a well-known key.
package storage

import (
	"context"
	"fmt"

	"github.com/gestorcrm/quotes-api/internal/config"
)

// Collection keys. Each key holds the complete JSON slice of its entity type.
const (
	KeyClients   = "clients"
	KeyProducts  = "products"
	KeySuppliers = "suppliers"
	KeyQuotes    = "quotes"
)

// Store is the synchronous key-value contract repositories build on.
// Get returns (nil, nil) when the key has never been written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// NewStore builds the Store selected by config.
func NewStore(cfg *config.Config) (Store, error) {
	switch cfg.Database.Driver {
	case "sqlite", "postgres":
		return NewGormStore(cfg)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}
