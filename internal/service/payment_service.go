package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/internal/ledger"
	"github.com/aqarat/estate-engine/internal/repository"
	"github.com/aqarat/estate-engine/pkg/apperrors"
)

// PaymentService applies and undoes payments against installments of
// either collection. All state changes go through a versioned update, so
// two sessions racing on the same installment cannot silently lose a
// payment; the loser gets a conflict and reloads.
type PaymentService struct {
	installments repository.InstallmentRepository
	cache        repository.SummaryCache
	policy       ledger.OverpaymentPolicy
	logger       *slog.Logger
}

func NewPaymentService(
	installments repository.InstallmentRepository,
	cache repository.SummaryCache,
	policy ledger.OverpaymentPolicy,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		installments: installments,
		cache:        cache,
		policy:       policy,
		logger:       logger,
	}
}

// ApplyPayment adds amount to the installment's running total and derives
// the new settlement status. The returned installment reflects only what
// the store confirmed.
func (s *PaymentService) ApplyPayment(ctx context.Context, kind domain.InstallmentKind, id uuid.UUID, amount decimal.Decimal) (*domain.Installment, error) {
	inst, err := s.load(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	updated, err := ledger.Apply(*inst, amount, s.policy, domain.Today())
	if err != nil {
		return nil, err
	}

	if err := s.commit(ctx, kind, &updated); err != nil {
		return nil, err
	}

	s.logger.Info("payment applied",
		"kind", kind,
		"installment_id", id,
		"amount", amount,
		"status", updated.Status)

	return &updated, nil
}

// ResetPayment is the undo operation: it zeroes the installment's payment
// state regardless of its current status.
func (s *PaymentService) ResetPayment(ctx context.Context, kind domain.InstallmentKind, id uuid.UUID) (*domain.Installment, error) {
	inst, err := s.load(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	updated := ledger.Reset(*inst)

	if err := s.commit(ctx, kind, &updated); err != nil {
		return nil, err
	}

	s.logger.Info("payment reset", "kind", kind, "installment_id", id)
	return &updated, nil
}

func (s *PaymentService) load(ctx context.Context, kind domain.InstallmentKind, id uuid.UUID) (*domain.Installment, error) {
	inst, err := s.installments.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapNotFound("installment")
		}
		return nil, apperrors.WrapPersistence(err)
	}
	return inst, nil
}

func (s *PaymentService) commit(ctx context.Context, kind domain.InstallmentKind, inst *domain.Installment) error {
	if err := s.installments.UpdatePayment(ctx, kind, inst); err != nil {
		if errors.Is(err, apperrors.ErrVersionMismatch) {
			return apperrors.WrapConflict("installment")
		}
		return apperrors.WrapPersistence(err)
	}

	invalidateSummaries(ctx, s.cache, kind, s.logger)
	return nil
}
