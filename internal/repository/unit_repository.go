package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aqarat/estate-engine/internal/domain"
)

type unitRepository struct {
	db *sqlx.DB
}

func NewUnitRepository(db *sqlx.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	query := `
		INSERT INTO units (id, property_id, name, unit_type, floor, size, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now().UTC()
	unit.CreatedAt = now
	unit.UpdatedAt = now

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		unit.ID,
		unit.PropertyID,
		unit.Name,
		unit.UnitType,
		unit.Floor,
		unit.Size,
		unit.Status,
		unit.CreatedAt,
		unit.UpdatedAt,
	)

	return err
}

func (r *unitRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Unit, error) {
	query := `
		SELECT id, property_id, name, unit_type, floor, size, status, created_at, updated_at
		FROM units
		WHERE id = $1
	`

	var unit domain.Unit
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &unit, query, id); err != nil {
		return nil, err
	}

	return &unit, nil
}

func (r *unitRepository) List(ctx context.Context, filter domain.UnitFilter) ([]*domain.Unit, error) {
	query := `
		SELECT id, property_id, name, unit_type, floor, size, status, created_at, updated_at
		FROM units
		WHERE ($1::uuid IS NULL OR property_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY name
	`

	var propertyID interface{}
	if filter.PropertyID != uuid.Nil {
		propertyID = filter.PropertyID
	}
	var status interface{}
	if filter.Status != "" {
		status = filter.Status
	}

	var units []*domain.Unit
	if err := r.db.SelectContext(ctx, &units, query, propertyID, status); err != nil {
		return nil, err
	}

	return units, nil
}

func (r *unitRepository) Update(ctx context.Context, unit *domain.Unit) error {
	query := `
		UPDATE units
		SET property_id = $2, name = $3, unit_type = $4, floor = $5, size = $6, status = $7, updated_at = $8
		WHERE id = $1
	`

	unit.UpdatedAt = time.Now().UTC()

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		unit.ID,
		unit.PropertyID,
		unit.Name,
		unit.UnitType,
		unit.Floor,
		unit.Size,
		unit.Status,
		unit.UpdatedAt,
	)

	return err
}

func (r *unitRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE units SET status = $2, updated_at = $3 WHERE id = $1`

	_, err := ext(ctx, r.db).ExecContext(ctx, query, id, status, time.Now().UTC())
	return err
}

func (r *unitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := ext(ctx, r.db).ExecContext(ctx, `DELETE FROM units WHERE id = $1`, id)
	return err
}
