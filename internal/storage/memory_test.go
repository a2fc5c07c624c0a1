package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyClients, []byte(`[{"id":"a"}]`)))

	value, err := store.Get(ctx, KeyClients)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"a"}]`), value)
}

func TestMemoryStoreMissingKeyReturnsNil(t *testing.T) {
	store := NewMemoryStore()

	value, err := store.Get(context.Background(), "never-written")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyQuotes, []byte(`[1]`)))
	require.NoError(t, store.Set(ctx, KeyQuotes, []byte(`[1,2]`)))

	value, err := store.Get(ctx, KeyQuotes)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), value)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	input := []byte(`[1]`)
	require.NoError(t, store.Set(ctx, KeyProducts, input))
	input[0] = 'x'

	value, err := store.Get(ctx, KeyProducts)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), value)
}
