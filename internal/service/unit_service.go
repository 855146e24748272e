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

type UnitService struct {
	units repository.UnitRepository
}

func NewUnitService(units repository.UnitRepository) *UnitService {
	return &UnitService{units: units}
}

func (s *UnitService) Create(ctx context.Context, req *domain.UnitRequest) (*domain.Unit, error) {
	status := req.Status
	if status == "" {
		status = domain.UnitStatusVacant
	}

	unit := &domain.Unit{
		ID:         uuid.New(),
		PropertyID: req.PropertyID,
		Name:       req.Name,
		UnitType:   req.UnitType,
		Floor:      req.Floor,
		Size:       req.Size,
		Status:     status,
	}

	if err := s.units.Create(ctx, unit); err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return unit, nil
}

func (s *UnitService) Get(ctx context.Context, id uuid.UUID) (*domain.Unit, error) {
	unit, err := s.units.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapNotFound("unit")
		}
		return nil, apperrors.WrapPersistence(err)
	}
	return unit, nil
}

func (s *UnitService) List(ctx context.Context, filter domain.UnitFilter) ([]*domain.Unit, error) {
	units, err := s.units.List(ctx, filter)
	if err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return units, nil
}

func (s *UnitService) Update(ctx context.Context, id uuid.UUID, req *domain.UnitRequest) (*domain.Unit, error) {
	unit, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	unit.PropertyID = req.PropertyID
	unit.Name = req.Name
	unit.UnitType = req.UnitType
	unit.Floor = req.Floor
	unit.Size = req.Size
	if req.Status != "" {
		unit.Status = req.Status
	}

	if err := s.units.Update(ctx, unit); err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return unit, nil
}

func (s *UnitService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.units.Delete(ctx, id); err != nil {
		return apperrors.WrapPersistence(err)
	}
	return nil
}
