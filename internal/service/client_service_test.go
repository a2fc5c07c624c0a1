package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/repository"
	"github.com/gestorcrm/quotes-api/internal/storage"
)

func newClientService(t *testing.T) *ClientService {
	t.Helper()
	return NewClientService(repository.NewClientRepository(storage.NewMemoryStore(), zap.NewNop()), zap.NewNop())
}

func TestClientCreateSetsRegistrationTime(t *testing.T) {
	svc := newClientService(t)

	client, err := svc.Create(context.Background(), &domain.CreateClientRequest{
		Name:  "Acme",
		Email: "acme@example.com",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, client.ID)
	assert.False(t, client.RegisteredAt.IsZero())
}

func TestClientUpdatePartialKeepsOtherFields(t *testing.T) {
	svc := newClientService(t)
	ctx := context.Background()

	client, err := svc.Create(ctx, &domain.CreateClientRequest{
		Name:  "Acme",
		Email: "acme@example.com",
		Phone: "123",
	})
	require.NoError(t, err)

	newPhone := "456"
	updated, err := svc.Update(ctx, client.ID, &domain.UpdateClientRequest{Phone: &newPhone})
	require.NoError(t, err)

	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, "acme@example.com", updated.Email)
	assert.Equal(t, "456", updated.Phone)
	assert.Equal(t, client.RegisteredAt.Unix(), updated.RegisteredAt.Unix())
}

func TestClientGetByIDNotFound(t *testing.T) {
	svc := newClientService(t)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestClientDeleteNotFound(t *testing.T) {
	svc := newClientService(t)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrClientNotFound)
}
