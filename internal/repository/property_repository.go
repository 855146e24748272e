package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aqarat/estate-engine/internal/domain"
)

type propertyRepository struct {
	db *sqlx.DB
}

func NewPropertyRepository(db *sqlx.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	query := `
		INSERT INTO properties (id, name, landlord, ownership, lease_start, lease_end, lease_amount, payment_frequency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		property.ID,
		property.Name,
		property.Landlord,
		property.Ownership,
		property.LeaseStart,
		property.LeaseEnd,
		property.LeaseAmount,
		property.PaymentFrequency,
		property.CreatedAt,
		property.UpdatedAt,
	)

	return err
}

func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	query := `
		SELECT id, name, landlord, ownership, lease_start, lease_end, lease_amount, payment_frequency, created_at, updated_at
		FROM properties
		WHERE id = $1
	`

	var property domain.Property
	if err := r.db.GetContext(ctx, &property, query, id); err != nil {
		return nil, err
	}

	return &property, nil
}

func (r *propertyRepository) List(ctx context.Context) ([]*domain.Property, error) {
	query := `
		SELECT id, name, landlord, ownership, lease_start, lease_end, lease_amount, payment_frequency, created_at, updated_at
		FROM properties
		ORDER BY created_at DESC
	`

	var properties []*domain.Property
	if err := r.db.SelectContext(ctx, &properties, query); err != nil {
		return nil, err
	}

	return properties, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	query := `
		UPDATE properties
		SET name = $2, landlord = $3, ownership = $4, lease_start = $5, lease_end = $6, lease_amount = $7, payment_frequency = $8, updated_at = $9
		WHERE id = $1
	`

	property.UpdatedAt = time.Now().UTC()

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		property.ID,
		property.Name,
		property.Landlord,
		property.Ownership,
		property.LeaseStart,
		property.LeaseEnd,
		property.LeaseAmount,
		property.PaymentFrequency,
		property.UpdatedAt,
	)

	return err
}

func (r *propertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := ext(ctx, r.db).ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	return err
}
