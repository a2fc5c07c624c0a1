// Package repository implements entity persistence over the key-value store.
// Each entity kind lives as one JSON-serialized slice under its own key, and
// every mutation is a full-collection read-modify-write.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/storage"
)

// collection wraps one store key with typed load/save. Loading fails open:
// a missing key or corrupt payload yields an empty slice, never an error, so
// a damaged collection degrades to "no data" instead of blocking the API.
type collection[T any] struct {
	key    string
	store  storage.Store
	logger *zap.Logger
}

func newCollection[T any](key string, store storage.Store, logger *zap.Logger) collection[T] {
	return collection[T]{key: key, store: store, logger: logger}
}

func (c *collection[T]) load(ctx context.Context) []T {
	raw, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.logger.Warn("Failed to read collection, treating as empty",
			zap.String("key", c.key),
			zap.Error(err),
		)
		return []T{}
	}
	if len(raw) == 0 {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.Warn("Corrupt collection payload, treating as empty",
			zap.String("key", c.key),
			zap.Error(err),
		)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize collection %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("failed to persist collection %s: %w", c.key, err)
	}
	return nil
}
