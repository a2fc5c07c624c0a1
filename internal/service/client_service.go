package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/repository"
)

// ClientService handles client business logic
type ClientService struct {
	clientRepo *repository.ClientRepository
	logger     *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(clientRepo *repository.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// GetAll returns all clients
func (s *ClientService) GetAll(ctx context.Context) ([]domain.Client, error) {
	return s.clientRepo.GetAll(ctx)
}

// GetByID returns a client by id
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// Create registers a new client
func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error) {
	client := &domain.Client{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.logger.Info("Client created",
		zap.String("client_id", client.ID.String()),
		zap.String("name", client.Name),
	)
	return client, nil
}

// Update applies a partial update; absent fields keep their stored value
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// Delete removes a client
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.clientRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if !deleted {
		return ErrClientNotFound
	}

	s.logger.Info("Client deleted", zap.String("client_id", id.String()))
	return nil
}
