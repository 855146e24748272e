package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/internal/repository"
	"github.com/aqarat/estate-engine/pkg/apperrors"
)

type ClientService struct {
	clients repository.ClientRepository
}

func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

func (s *ClientService) Create(ctx context.Context, req *domain.ClientRequest) (*domain.Client, error) {
	client := &domain.Client{
		ID:             uuid.New(),
		Name:           req.Name,
		ContactPerson:  req.ContactPerson,
		Phone:          req.Phone,
		Email:          req.Email,
		WhatsappNumber: req.WhatsappNumber,
		Address:        req.Address,
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapNotFound("client")
		}
		return nil, apperrors.WrapPersistence(err)
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return clients, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.ClientRequest) (*domain.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Name = req.Name
	client.ContactPerson = req.ContactPerson
	client.Phone = req.Phone
	client.Email = req.Email
	client.WhatsappNumber = req.WhatsappNumber
	client.Address = req.Address

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		return apperrors.WrapPersistence(err)
	}
	return nil
}
