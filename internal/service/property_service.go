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

type PropertyService struct {
	properties   repository.PropertyRepository
	installments repository.InstallmentRepository
	cache        repository.SummaryCache
	tx           repository.Transactor
	logger       *slog.Logger
}

func NewPropertyService(
	properties repository.PropertyRepository,
	installments repository.InstallmentRepository,
	cache repository.SummaryCache,
	tx repository.Transactor,
	logger *slog.Logger,
) *PropertyService {
	return &PropertyService{
		properties:   properties,
		installments: installments,
		cache:        cache,
		tx:           tx,
		logger:       logger,
	}
}

// Create stores the property and, when it is leased, generates and stores
// its lease payment schedule; the record and its schedule commit as one
// transaction.
func (s *PropertyService) Create(ctx context.Context, req *domain.PropertyRequest) (*domain.Property, []*domain.Installment, error) {
	property := &domain.Property{
		ID:        uuid.New(),
		Name:      req.Name,
		Landlord:  req.Landlord,
		Ownership: req.Ownership,
	}

	if property.IsLeased() {
		freq, err := domain.ParseFrequency(req.PaymentFrequency)
		if err != nil {
			return nil, nil, apperrors.WrapUnsupportedFrequency(req.PaymentFrequency)
		}
		property.LeaseStart = req.LeaseStart
		property.LeaseEnd = req.LeaseEnd
		property.LeaseAmount = req.LeaseAmount
		property.PaymentFrequency = freq
	}

	var installments []*domain.Installment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.properties.Create(ctx, property); err != nil {
			return apperrors.WrapPersistence(err)
		}

		if !property.IsLeased() {
			return nil
		}

		entries, err := schedule.Generate(property.LeaseStart, property.LeaseEnd,
			property.LeaseAmount.Decimal, property.PaymentFrequency)
		if err != nil {
			return err
		}

		installments = schedule.Installments(property.ID, entries)
		if len(installments) > 0 {
			if err := s.installments.BulkInsert(ctx, domain.KindLease, installments); err != nil {
				return apperrors.WrapPersistence(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if property.IsLeased() {
		if len(installments) > 0 {
			invalidateSummaries(ctx, s.cache, domain.KindLease, s.logger)
		}
		s.logger.Info("lease schedule generated",
			"property_id", property.ID,
			"installments", len(installments),
			"frequency", property.PaymentFrequency)
	}

	return property, installments, nil
}

func (s *PropertyService) Get(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapNotFound("property")
		}
		return nil, apperrors.WrapPersistence(err)
	}
	return property, nil
}

func (s *PropertyService) List(ctx context.Context) ([]*domain.Property, error) {
	properties, err := s.properties.List(ctx)
	if err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return properties, nil
}

// Update edits the property record. Schedules are not regenerated: lease
// payments already issued stay as they were at creation time.
func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, req *domain.PropertyRequest) (*domain.Property, error) {
	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	property.Name = req.Name
	property.Landlord = req.Landlord
	property.Ownership = req.Ownership
	property.LeaseStart = domain.Date{}
	property.LeaseEnd = domain.Date{}
	property.LeaseAmount.Valid = false
	property.PaymentFrequency = ""

	if property.IsLeased() {
		freq, err := domain.ParseFrequency(req.PaymentFrequency)
		if err != nil {
			return nil, apperrors.WrapUnsupportedFrequency(req.PaymentFrequency)
		}
		property.LeaseStart = req.LeaseStart
		property.LeaseEnd = req.LeaseEnd
		property.LeaseAmount = req.LeaseAmount
		property.PaymentFrequency = freq
	}

	if err := s.properties.Update(ctx, property); err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return property, nil
}

func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.properties.Delete(ctx, id); err != nil {
		return apperrors.WrapPersistence(err)
	}
	invalidateSummaries(ctx, s.cache, domain.KindLease, s.logger)
	return nil
}

// LeaseSchedule returns the property's lease payments ordered by due date.
func (s *PropertyService) LeaseSchedule(ctx context.Context, propertyID uuid.UUID) ([]*domain.Installment, error) {
	installments, err := s.installments.ListByOwner(ctx, domain.KindLease, propertyID)
	if err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return installments, nil
}

// invalidateSummaries drops cached dashboard windows after a mutation.
// The cache is rebuilt lazily and bounded by its TTL, so a failure here is
// logged rather than failing the mutation that already committed.
func invalidateSummaries(ctx context.Context, cache repository.SummaryCache, kind domain.InstallmentKind, logger *slog.Logger) {
	if err := cache.Invalidate(ctx, kind); err != nil {
		logger.Warn("summary cache invalidation failed", "kind", kind, "error", err)
	}
}
