package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/pkg/apperrors"
	"github.com/aqarat/estate-engine/tests/mocks"
)

func leasedPropertyRequest() *domain.PropertyRequest {
	return &domain.PropertyRequest{
		Name:             "Al Noor Tower",
		Landlord:         "M. Hariri",
		Ownership:        domain.OwnershipLeased,
		LeaseStart:       domain.NewDate(2025, time.January, 1),
		LeaseEnd:         domain.NewDate(2025, time.December, 1),
		LeaseAmount:      decimal.NewNullDecimal(decimal.NewFromInt(12000)),
		PaymentFrequency: "monthly",
	}
}

func TestCreateProperty_LeasedGeneratesSchedule(t *testing.T) {
	propertyRepo := &mocks.MockPropertyRepository{}
	installmentRepo := &mocks.MockInstallmentRepository{}
	cache := &mocks.MockSummaryCache{}
	svc := NewPropertyService(propertyRepo, installmentRepo, cache, passthroughTx(), discardLogger())

	propertyRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Property) bool {
		return p.Name == "Al Noor Tower" && p.IsLeased()
	})).Return(nil)
	installmentRepo.On("BulkInsert", mock.Anything, domain.KindLease, mock.MatchedBy(func(installments []*domain.Installment) bool {
		return len(installments) == 12 &&
			installments[0].DueDate == domain.NewDate(2025, time.January, 1) &&
			installments[0].Status == domain.InstallmentStatusPending
	})).Return(nil)
	cache.On("Invalidate", mock.Anything, domain.KindLease).Return(nil)

	property, schedule, err := svc.Create(context.Background(), leasedPropertyRequest())

	require.NoError(t, err)
	assert.True(t, property.IsLeased())
	assert.Len(t, schedule, 12)
	for _, inst := range schedule {
		assert.Equal(t, property.ID, inst.OwnerID)
		assert.True(t, inst.AmountDue.Equal(decimal.NewFromInt(12000)))
	}

	propertyRepo.AssertExpectations(t)
	installmentRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCreateProperty_ScheduleInsertFailureAborts(t *testing.T) {
	propertyRepo := &mocks.MockPropertyRepository{}
	installmentRepo := &mocks.MockInstallmentRepository{}
	cache := &mocks.MockSummaryCache{}
	tx := passthroughTx()
	svc := NewPropertyService(propertyRepo, installmentRepo, cache, tx, discardLogger())

	propertyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	installmentRepo.On("BulkInsert", mock.Anything, domain.KindLease, mock.Anything).
		Return(errors.New("connection reset"))

	_, _, err := svc.Create(context.Background(), leasedPropertyRequest())

	require.Error(t, err)
	assert.Equal(t, apperrors.CodePersistence, apperrors.CodeOf(err))
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	tx.AssertCalled(t, "WithinTx", mock.Anything, mock.Anything)
}

func TestCreateProperty_OwnedSkipsSchedule(t *testing.T) {
	propertyRepo := &mocks.MockPropertyRepository{}
	installmentRepo := &mocks.MockInstallmentRepository{}
	cache := &mocks.MockSummaryCache{}
	svc := NewPropertyService(propertyRepo, installmentRepo, cache, passthroughTx(), discardLogger())

	propertyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	property, schedule, err := svc.Create(context.Background(), &domain.PropertyRequest{
		Name:      "Head Office",
		Ownership: domain.OwnershipOwned,
	})

	require.NoError(t, err)
	assert.False(t, property.IsLeased())
	assert.Empty(t, schedule)
	installmentRepo.AssertNotCalled(t, "BulkInsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateProperty_UnknownFrequency(t *testing.T) {
	propertyRepo := &mocks.MockPropertyRepository{}
	installmentRepo := &mocks.MockInstallmentRepository{}
	cache := &mocks.MockSummaryCache{}
	svc := NewPropertyService(propertyRepo, installmentRepo, cache, passthroughTx(), discardLogger())

	req := leasedPropertyRequest()
	req.PaymentFrequency = "weekly"

	_, _, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFrequency)
	propertyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetProperty_NotFound(t *testing.T) {
	propertyRepo := &mocks.MockPropertyRepository{}
	svc := NewPropertyService(propertyRepo, &mocks.MockInstallmentRepository{}, &mocks.MockSummaryCache{}, passthroughTx(), discardLogger())

	id := uuid.New()
	propertyRepo.On("GetByID", mock.Anything, id).Return(nil, sql.ErrNoRows)

	_, err := svc.Get(context.Background(), id)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateProperty_SwitchToOwnedClearsLeaseFields(t *testing.T) {
	propertyRepo := &mocks.MockPropertyRepository{}
	svc := NewPropertyService(propertyRepo, &mocks.MockInstallmentRepository{}, &mocks.MockSummaryCache{}, passthroughTx(), discardLogger())

	id := uuid.New()
	existing := &domain.Property{
		ID:               id,
		Name:             "Al Noor Tower",
		Ownership:        domain.OwnershipLeased,
		LeaseStart:       domain.NewDate(2025, time.January, 1),
		LeaseEnd:         domain.NewDate(2025, time.December, 1),
		LeaseAmount:      decimal.NewNullDecimal(decimal.NewFromInt(12000)),
		PaymentFrequency: domain.FrequencyMonthly,
	}

	propertyRepo.On("GetByID", mock.Anything, id).Return(existing, nil)
	propertyRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Property) bool {
		return p.Ownership == domain.OwnershipOwned &&
			p.LeaseStart.IsZero() && !p.LeaseAmount.Valid && p.PaymentFrequency == ""
	})).Return(nil)

	updated, err := svc.Update(context.Background(), id, &domain.PropertyRequest{
		Name:      "Al Noor Tower",
		Ownership: domain.OwnershipOwned,
	})

	require.NoError(t, err)
	assert.False(t, updated.IsLeased())
	propertyRepo.AssertExpectations(t)
}
