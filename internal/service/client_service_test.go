package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/pkg/apperrors"
	"github.com/aqarat/estate-engine/tests/mocks"
)

func TestCreateClient_CarriesContactFields(t *testing.T) {
	clientRepo := &mocks.MockClientRepository{}
	svc := NewClientService(clientRepo)

	clientRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Client) bool {
		return c.Name == "Dar Al Salam Trading" &&
			c.ContactPerson == "Abu Khalil" &&
			c.WhatsappNumber == "+961 70 123 456" &&
			c.Address == "Hamra, Beirut"
	})).Return(nil)

	client, err := svc.Create(context.Background(), &domain.ClientRequest{
		Name:           "Dar Al Salam Trading",
		ContactPerson:  "Abu Khalil",
		Phone:          "+961 1 350 000",
		Email:          "office@daralsalam.example",
		WhatsappNumber: "+961 70 123 456",
		Address:        "Hamra, Beirut",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, client.ID)
	clientRepo.AssertExpectations(t)
}

func TestUpdateClient_ReplacesContactFields(t *testing.T) {
	clientRepo := &mocks.MockClientRepository{}
	svc := NewClientService(clientRepo)

	id := uuid.New()
	clientRepo.On("GetByID", mock.Anything, id).Return(&domain.Client{
		ID:            id,
		Name:          "Dar Al Salam Trading",
		ContactPerson: "Abu Khalil",
	}, nil)
	clientRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Client) bool {
		return c.ContactPerson == "Umm Khalil" && c.WhatsappNumber == "+961 71 987 654"
	})).Return(nil)

	updated, err := svc.Update(context.Background(), id, &domain.ClientRequest{
		Name:           "Dar Al Salam Trading",
		ContactPerson:  "Umm Khalil",
		WhatsappNumber: "+961 71 987 654",
	})

	require.NoError(t, err)
	assert.Equal(t, "Umm Khalil", updated.ContactPerson)
	clientRepo.AssertExpectations(t)
}

func TestGetClient_NotFound(t *testing.T) {
	clientRepo := &mocks.MockClientRepository{}
	svc := NewClientService(clientRepo)

	id := uuid.New()
	clientRepo.On("GetByID", mock.Anything, id).Return(nil, sql.ErrNoRows)

	_, err := svc.Get(context.Background(), id)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
