package service

import (
	"context"
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

func contractFixture() (*domain.ContractRequest, *domain.Unit) {
	propertyID := uuid.New()
	unitID := uuid.New()

	req := &domain.ContractRequest{
		PropertyID:       propertyID,
		UnitID:           unitID,
		ClientID:         uuid.New(),
		StartDate:        domain.NewDate(2025, time.January, 15),
		EndDate:          domain.NewDate(2025, time.December, 31),
		RentAmount:       decimal.NewFromInt(3000),
		PaymentFrequency: "quarterly",
		SecurityDeposit:  decimal.NewFromInt(3000),
	}
	unit := &domain.Unit{
		ID:         unitID,
		PropertyID: propertyID,
		Name:       "A101",
		Status:     domain.UnitStatusVacant,
	}
	return req, unit
}

func passthroughTx() *mocks.MockTransactor {
	tx := &mocks.MockTransactor{}
	tx.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	return tx
}

func TestCreateContract_GeneratesReceivablesAndOccupiesUnit(t *testing.T) {
	contractRepo := &mocks.MockContractRepository{}
	unitRepo := &mocks.MockUnitRepository{}
	installmentRepo := &mocks.MockInstallmentRepository{}
	cache := &mocks.MockSummaryCache{}
	svc := NewContractService(contractRepo, unitRepo, installmentRepo, cache, passthroughTx(), discardLogger())

	req, unit := contractFixture()

	unitRepo.On("GetByID", mock.Anything, req.UnitID).Return(unit, nil)
	contractRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Contract) bool {
		return c.PaymentFrequency == domain.FrequencyQuarterly
	})).Return(nil)
	installmentRepo.On("BulkInsert", mock.Anything, domain.KindRent, mock.MatchedBy(func(installments []*domain.Installment) bool {
		// Jan 15, Apr 15, Jul 15, Oct 15.
		return len(installments) == 4 &&
			installments[3].DueDate == domain.NewDate(2025, time.October, 15)
	})).Return(nil)
	cache.On("Invalidate", mock.Anything, domain.KindRent).Return(nil)
	unitRepo.On("UpdateStatus", mock.Anything, unit.ID, domain.UnitStatusOccupied).Return(nil)

	contract, schedule, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, schedule, 4)
	for _, inst := range schedule {
		assert.Equal(t, contract.ID, inst.OwnerID)
		assert.True(t, inst.AmountDue.Equal(decimal.NewFromInt(3000)))
	}

	contractRepo.AssertExpectations(t)
	unitRepo.AssertExpectations(t)
	installmentRepo.AssertExpectations(t)
}

func TestCreateContract_ScheduleInsertFailureAborts(t *testing.T) {
	contractRepo := &mocks.MockContractRepository{}
	unitRepo := &mocks.MockUnitRepository{}
	installmentRepo := &mocks.MockInstallmentRepository{}
	cache := &mocks.MockSummaryCache{}
	tx := passthroughTx()
	svc := NewContractService(contractRepo, unitRepo, installmentRepo, cache, tx, discardLogger())

	req, unit := contractFixture()

	unitRepo.On("GetByID", mock.Anything, req.UnitID).Return(unit, nil)
	contractRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	installmentRepo.On("BulkInsert", mock.Anything, domain.KindRent, mock.Anything).
		Return(errors.New("deadlock detected"))

	_, _, err := svc.Create(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodePersistence, apperrors.CodeOf(err))
	// The failed insert aborts the transaction: the unit stays vacant
	// and the cache keeps its entries.
	unitRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	tx.AssertCalled(t, "WithinTx", mock.Anything, mock.Anything)
}

func TestCreateContract_EndBeforeStart(t *testing.T) {
	svc := NewContractService(&mocks.MockContractRepository{}, &mocks.MockUnitRepository{},
		&mocks.MockInstallmentRepository{}, &mocks.MockSummaryCache{}, passthroughTx(), discardLogger())

	req, _ := contractFixture()
	req.StartDate = domain.NewDate(2025, time.June, 1)
	req.EndDate = domain.NewDate(2025, time.May, 1)

	_, _, err := svc.Create(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestCreateContract_UnitFromAnotherProperty(t *testing.T) {
	contractRepo := &mocks.MockContractRepository{}
	unitRepo := &mocks.MockUnitRepository{}
	svc := NewContractService(contractRepo, unitRepo,
		&mocks.MockInstallmentRepository{}, &mocks.MockSummaryCache{}, passthroughTx(), discardLogger())

	req, unit := contractFixture()
	unit.PropertyID = uuid.New()
	unitRepo.On("GetByID", mock.Anything, req.UnitID).Return(unit, nil)

	_, _, err := svc.Create(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	contractRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateContract_ZeroRentSkipsSchedule(t *testing.T) {
	contractRepo := &mocks.MockContractRepository{}
	unitRepo := &mocks.MockUnitRepository{}
	installmentRepo := &mocks.MockInstallmentRepository{}
	svc := NewContractService(contractRepo, unitRepo, installmentRepo, &mocks.MockSummaryCache{}, passthroughTx(), discardLogger())

	req, unit := contractFixture()
	req.RentAmount = decimal.Zero

	unitRepo.On("GetByID", mock.Anything, req.UnitID).Return(unit, nil)
	contractRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	unitRepo.On("UpdateStatus", mock.Anything, unit.ID, domain.UnitStatusOccupied).Return(nil)

	_, schedule, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, schedule)
	installmentRepo.AssertNotCalled(t, "BulkInsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateContract_EditsTermsWithoutRegenerating(t *testing.T) {
	contractRepo := &mocks.MockContractRepository{}
	unitRepo := &mocks.MockUnitRepository{}
	installmentRepo := &mocks.MockInstallmentRepository{}
	svc := NewContractService(contractRepo, unitRepo, installmentRepo, &mocks.MockSummaryCache{}, passthroughTx(), discardLogger())

	req, unit := contractFixture()
	contractID := uuid.New()
	existing := &domain.Contract{
		ID:               contractID,
		PropertyID:       req.PropertyID,
		UnitID:           req.UnitID,
		ClientID:         uuid.New(),
		StartDate:        domain.NewDate(2024, time.January, 1),
		EndDate:          domain.NewDate(2024, time.December, 31),
		RentAmount:       decimal.NewFromInt(2000),
		PaymentFrequency: domain.FrequencyMonthly,
	}

	req.RentAmount = decimal.NewFromInt(3500)
	unitRepo.On("GetByID", mock.Anything, req.UnitID).Return(unit, nil)
	contractRepo.On("GetByID", mock.Anything, contractID).Return(existing, nil)
	contractRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Contract) bool {
		return c.ID == contractID &&
			c.ClientID == req.ClientID &&
			c.RentAmount.Equal(decimal.NewFromInt(3500)) &&
			c.PaymentFrequency == domain.FrequencyQuarterly
	})).Return(nil)

	updated, err := svc.Update(context.Background(), contractID, req)

	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2025, time.January, 15), updated.StartDate)
	// Editing terms never touches the issued receivables or the unit.
	installmentRepo.AssertNotCalled(t, "BulkInsert", mock.Anything, mock.Anything, mock.Anything)
	unitRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	contractRepo.AssertExpectations(t)
}

func TestUpdateContract_UnitFromAnotherProperty(t *testing.T) {
	contractRepo := &mocks.MockContractRepository{}
	unitRepo := &mocks.MockUnitRepository{}
	svc := NewContractService(contractRepo, unitRepo,
		&mocks.MockInstallmentRepository{}, &mocks.MockSummaryCache{}, passthroughTx(), discardLogger())

	req, unit := contractFixture()
	unit.PropertyID = uuid.New()
	unitRepo.On("GetByID", mock.Anything, req.UnitID).Return(unit, nil)

	_, err := svc.Update(context.Background(), uuid.New(), req)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	contractRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteContract_FreesUnit(t *testing.T) {
	contractRepo := &mocks.MockContractRepository{}
	unitRepo := &mocks.MockUnitRepository{}
	cache := &mocks.MockSummaryCache{}
	svc := NewContractService(contractRepo, unitRepo, &mocks.MockInstallmentRepository{}, cache, passthroughTx(), discardLogger())

	contractID := uuid.New()
	unitID := uuid.New()
	contractRepo.On("GetByID", mock.Anything, contractID).Return(&domain.Contract{
		ID:     contractID,
		UnitID: unitID,
	}, nil)
	contractRepo.On("Delete", mock.Anything, contractID).Return(nil)
	unitRepo.On("UpdateStatus", mock.Anything, unitID, domain.UnitStatusVacant).Return(nil)
	cache.On("Invalidate", mock.Anything, domain.KindRent).Return(nil)

	err := svc.Delete(context.Background(), contractID)

	require.NoError(t, err)
	contractRepo.AssertExpectations(t)
	unitRepo.AssertExpectations(t)
}
