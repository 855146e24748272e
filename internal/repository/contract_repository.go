package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aqarat/estate-engine/internal/domain"
)

type contractRepository struct {
	db *sqlx.DB
}

func NewContractRepository(db *sqlx.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) Create(ctx context.Context, contract *domain.Contract) error {
	query := `
		INSERT INTO contracts (id, property_id, unit_id, client_id, start_date, end_date, rent_amount, payment_frequency, security_deposit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	now := time.Now().UTC()
	contract.CreatedAt = now
	contract.UpdatedAt = now

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		contract.ID,
		contract.PropertyID,
		contract.UnitID,
		contract.ClientID,
		contract.StartDate,
		contract.EndDate,
		contract.RentAmount,
		contract.PaymentFrequency,
		contract.SecurityDeposit,
		contract.CreatedAt,
		contract.UpdatedAt,
	)

	return err
}

func (r *contractRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	query := `
		SELECT id, property_id, unit_id, client_id, start_date, end_date, rent_amount, payment_frequency, security_deposit, created_at, updated_at
		FROM contracts
		WHERE id = $1
	`

	var contract domain.Contract
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &contract, query, id); err != nil {
		return nil, err
	}

	return &contract, nil
}

func (r *contractRepository) List(ctx context.Context) ([]*domain.ContractSummary, error) {
	query := `
		SELECT c.id, c.property_id, c.unit_id, c.client_id, c.start_date, c.end_date,
		       c.rent_amount, c.payment_frequency, c.security_deposit, c.created_at, c.updated_at,
		       p.name AS property_name, u.name AS unit_name, cl.name AS client_name
		FROM contracts c
		JOIN properties p ON p.id = c.property_id
		JOIN units u ON u.id = c.unit_id
		JOIN clients cl ON cl.id = c.client_id
		ORDER BY c.start_date DESC
	`

	var contracts []*domain.ContractSummary
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &contracts, query); err != nil {
		return nil, err
	}

	return contracts, nil
}

func (r *contractRepository) Update(ctx context.Context, contract *domain.Contract) error {
	query := `
		UPDATE contracts
		SET property_id = $2, unit_id = $3, client_id = $4, start_date = $5, end_date = $6,
		    rent_amount = $7, payment_frequency = $8, security_deposit = $9, updated_at = $10
		WHERE id = $1
	`

	contract.UpdatedAt = time.Now().UTC()

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		contract.ID,
		contract.PropertyID,
		contract.UnitID,
		contract.ClientID,
		contract.StartDate,
		contract.EndDate,
		contract.RentAmount,
		contract.PaymentFrequency,
		contract.SecurityDeposit,
		contract.UpdatedAt,
	)

	return err
}

func (r *contractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := ext(ctx, r.db).ExecContext(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	return err
}
