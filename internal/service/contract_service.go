package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/internal/repository"
	"github.com/aqarat/estate-engine/internal/schedule"
	"github.com/aqarat/estate-engine/pkg/apperrors"
)

type ContractService struct {
	contracts    repository.ContractRepository
	units        repository.UnitRepository
	installments repository.InstallmentRepository
	cache        repository.SummaryCache
	tx           repository.Transactor
	logger       *slog.Logger
}

func NewContractService(
	contracts repository.ContractRepository,
	units repository.UnitRepository,
	installments repository.InstallmentRepository,
	cache repository.SummaryCache,
	tx repository.Transactor,
	logger *slog.Logger,
) *ContractService {
	return &ContractService{
		contracts:    contracts,
		units:        units,
		installments: installments,
		cache:        cache,
		tx:           tx,
		logger:       logger,
	}
}

// Create stores the contract, generates its rent receivable schedule
// through the shared generator, and marks the unit occupied; the three
// writes commit as one transaction, so a failure leaves no schedule-less
// contract behind. Receivable generation and lease payment generation
// share one implementation on purpose: the due dates of a contract and a
// lease with the same terms are identical.
func (s *ContractService) Create(ctx context.Context, req *domain.ContractRequest) (*domain.Contract, []*domain.Installment, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, nil, apperrors.WrapValidation("contract end date precedes start date", nil)
	}

	freq, err := domain.ParseFrequency(req.PaymentFrequency)
	if err != nil {
		return nil, nil, apperrors.WrapUnsupportedFrequency(req.PaymentFrequency)
	}

	unit, err := s.unitOfProperty(ctx, req.UnitID, req.PropertyID)
	if err != nil {
		return nil, nil, err
	}

	contract := &domain.Contract{
		ID:               uuid.New(),
		PropertyID:       req.PropertyID,
		UnitID:           req.UnitID,
		ClientID:         req.ClientID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		RentAmount:       req.RentAmount,
		PaymentFrequency: freq,
		SecurityDeposit:  req.SecurityDeposit,
	}

	var installments []*domain.Installment
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.contracts.Create(ctx, contract); err != nil {
			return apperrors.WrapPersistence(err)
		}

		// A zero-rent contract (caretaker arrangements and the like)
		// gets no receivables.
		if contract.RentAmount.IsPositive() {
			entries, err := schedule.Generate(contract.StartDate, contract.EndDate, contract.RentAmount, freq)
			if err != nil {
				return err
			}

			installments = schedule.Installments(contract.ID, entries)
			if len(installments) > 0 {
				if err := s.installments.BulkInsert(ctx, domain.KindRent, installments); err != nil {
					return apperrors.WrapPersistence(err)
				}
			}
		}

		if err := s.units.UpdateStatus(ctx, unit.ID, domain.UnitStatusOccupied); err != nil {
			return apperrors.WrapPersistence(err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if len(installments) > 0 {
		invalidateSummaries(ctx, s.cache, domain.KindRent, s.logger)
	}

	s.logger.Info("rent schedule generated",
		"contract_id", contract.ID,
		"installments", len(installments),
		"frequency", freq)

	return contract, installments, nil
}

// Update edits the contract's terms in place. Receivables already issued
// are left untouched; the unit occupancy bookkeeping is not revisited
// either.
func (s *ContractService) Update(ctx context.Context, id uuid.UUID, req *domain.ContractRequest) (*domain.Contract, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, apperrors.WrapValidation("contract end date precedes start date", nil)
	}

	freq, err := domain.ParseFrequency(req.PaymentFrequency)
	if err != nil {
		return nil, apperrors.WrapUnsupportedFrequency(req.PaymentFrequency)
	}

	if _, err := s.unitOfProperty(ctx, req.UnitID, req.PropertyID); err != nil {
		return nil, err
	}

	contract, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	contract.PropertyID = req.PropertyID
	contract.UnitID = req.UnitID
	contract.ClientID = req.ClientID
	contract.StartDate = req.StartDate
	contract.EndDate = req.EndDate
	contract.RentAmount = req.RentAmount
	contract.PaymentFrequency = freq
	contract.SecurityDeposit = req.SecurityDeposit

	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return contract, nil
}

func (s *ContractService) unitOfProperty(ctx context.Context, unitID, propertyID uuid.UUID) (*domain.Unit, error) {
	unit, err := s.units.GetByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapNotFound("unit")
		}
		return nil, apperrors.WrapPersistence(err)
	}
	if unit.PropertyID != propertyID {
		return nil, apperrors.WrapValidation("unit does not belong to the selected property", nil)
	}
	return unit, nil
}

func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapNotFound("contract")
		}
		return nil, apperrors.WrapPersistence(err)
	}
	return contract, nil
}

func (s *ContractService) List(ctx context.Context) ([]*domain.ContractSummary, error) {
	contracts, err := s.contracts.List(ctx)
	if err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return contracts, nil
}

// Delete removes the contract (receivables cascade with it) and frees the
// unit, atomically.
func (s *ContractService) Delete(ctx context.Context, id uuid.UUID) error {
	contract, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.contracts.Delete(ctx, id); err != nil {
			return apperrors.WrapPersistence(err)
		}
		if err := s.units.UpdateStatus(ctx, contract.UnitID, domain.UnitStatusVacant); err != nil {
			return apperrors.WrapPersistence(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateSummaries(ctx, s.cache, domain.KindRent, s.logger)
	return nil
}

// Receivables returns the contract's rent receivables ordered by due date.
func (s *ContractService) Receivables(ctx context.Context, contractID uuid.UUID) ([]*domain.Installment, error) {
	installments, err := s.installments.ListByOwner(ctx, domain.KindRent, contractID)
	if err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return installments, nil
}
