package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/internal/ledger"
	"github.com/aqarat/estate-engine/pkg/apperrors"
	"github.com/aqarat/estate-engine/tests/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pendingInstallment(id uuid.UUID, due int64) *domain.Installment {
	return &domain.Installment{
		ID:         id,
		OwnerID:    uuid.New(),
		DueDate:    domain.NewDate(2025, time.September, 1),
		AmountDue:  decimal.NewFromInt(due),
		AmountPaid: decimal.Zero,
		Status:     domain.InstallmentStatusPending,
		Version:    3,
	}
}

func TestApplyPayment_Partial(t *testing.T) {
	installmentRepo := &mocks.MockInstallmentRepository{}
	cache := &mocks.MockSummaryCache{}
	svc := NewPaymentService(installmentRepo, cache, ledger.PolicyLenient, discardLogger())

	id := uuid.New()
	installmentRepo.On("GetByID", mock.Anything, domain.KindRent, id).
		Return(pendingInstallment(id, 1000), nil)
	installmentRepo.On("UpdatePayment", mock.Anything, domain.KindRent, mock.MatchedBy(func(inst *domain.Installment) bool {
		return inst.AmountPaid.Equal(decimal.NewFromInt(400)) &&
			inst.Status == domain.InstallmentStatusPartial &&
			!inst.PaidAt.IsZero()
	})).Return(nil)
	cache.On("Invalidate", mock.Anything, domain.KindRent).Return(nil)

	updated, err := svc.ApplyPayment(context.Background(), domain.KindRent, id, decimal.NewFromInt(400))

	require.NoError(t, err)
	assert.Equal(t, domain.InstallmentStatusPartial, updated.Status)
	assert.True(t, updated.AmountPaid.Equal(decimal.NewFromInt(400)))

	installmentRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestApplyPayment_FullSettlement(t *testing.T) {
	installmentRepo := &mocks.MockInstallmentRepository{}
	cache := &mocks.MockSummaryCache{}
	svc := NewPaymentService(installmentRepo, cache, ledger.PolicyLenient, discardLogger())

	id := uuid.New()
	installmentRepo.On("GetByID", mock.Anything, domain.KindLease, id).
		Return(pendingInstallment(id, 1000), nil)
	installmentRepo.On("UpdatePayment", mock.Anything, domain.KindLease, mock.MatchedBy(func(inst *domain.Installment) bool {
		return inst.Status == domain.InstallmentStatusPaid
	})).Return(nil)
	cache.On("Invalidate", mock.Anything, domain.KindLease).Return(nil)

	updated, err := svc.ApplyPayment(context.Background(), domain.KindLease, id, decimal.NewFromInt(1000))

	require.NoError(t, err)
	assert.Equal(t, domain.InstallmentStatusPaid, updated.Status)
	installmentRepo.AssertExpectations(t)
}

func TestApplyPayment_Conflict(t *testing.T) {
	installmentRepo := &mocks.MockInstallmentRepository{}
	cache := &mocks.MockSummaryCache{}
	svc := NewPaymentService(installmentRepo, cache, ledger.PolicyLenient, discardLogger())

	id := uuid.New()
	installmentRepo.On("GetByID", mock.Anything, domain.KindRent, id).
		Return(pendingInstallment(id, 1000), nil)
	installmentRepo.On("UpdatePayment", mock.Anything, domain.KindRent, mock.Anything).
		Return(apperrors.ErrVersionMismatch)

	_, err := svc.ApplyPayment(context.Background(), domain.KindRent, id, decimal.NewFromInt(100))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrVersionMismatch)
	assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestApplyPayment_NotFound(t *testing.T) {
	installmentRepo := &mocks.MockInstallmentRepository{}
	cache := &mocks.MockSummaryCache{}
	svc := NewPaymentService(installmentRepo, cache, ledger.PolicyLenient, discardLogger())

	id := uuid.New()
	installmentRepo.On("GetByID", mock.Anything, domain.KindRent, id).Return(nil, sql.ErrNoRows)

	_, err := svc.ApplyPayment(context.Background(), domain.KindRent, id, decimal.NewFromInt(100))

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestApplyPayment_StrictPolicyRejectsOverpay(t *testing.T) {
	installmentRepo := &mocks.MockInstallmentRepository{}
	cache := &mocks.MockSummaryCache{}
	svc := NewPaymentService(installmentRepo, cache, ledger.PolicyStrict, discardLogger())

	id := uuid.New()
	installmentRepo.On("GetByID", mock.Anything, domain.KindRent, id).
		Return(pendingInstallment(id, 1000), nil)

	_, err := svc.ApplyPayment(context.Background(), domain.KindRent, id, decimal.NewFromInt(1200))

	assert.ErrorIs(t, err, apperrors.ErrOverpayment)
	installmentRepo.AssertNotCalled(t, "UpdatePayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPayment(t *testing.T) {
	installmentRepo := &mocks.MockInstallmentRepository{}
	cache := &mocks.MockSummaryCache{}
	svc := NewPaymentService(installmentRepo, cache, ledger.PolicyLenient, discardLogger())

	id := uuid.New()
	paid := pendingInstallment(id, 1000)
	paid.AmountPaid = decimal.NewFromInt(1000)
	paid.Status = domain.InstallmentStatusPaid
	paid.PaidAt = domain.NewDate(2025, time.August, 1)

	installmentRepo.On("GetByID", mock.Anything, domain.KindRent, id).Return(paid, nil)
	installmentRepo.On("UpdatePayment", mock.Anything, domain.KindRent, mock.MatchedBy(func(inst *domain.Installment) bool {
		return inst.AmountPaid.IsZero() &&
			inst.Status == domain.InstallmentStatusPending &&
			inst.PaidAt.IsZero()
	})).Return(nil)
	cache.On("Invalidate", mock.Anything, domain.KindRent).Return(nil)

	updated, err := svc.ResetPayment(context.Background(), domain.KindRent, id)

	require.NoError(t, err)
	assert.True(t, updated.AmountPaid.IsZero())
	assert.Equal(t, domain.InstallmentStatusPending, updated.Status)
	installmentRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
