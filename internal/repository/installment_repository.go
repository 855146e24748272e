package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/pkg/apperrors"
)

type installmentRepository struct {
	db *sqlx.DB
}

func NewInstallmentRepository(db *sqlx.DB) InstallmentRepository {
	return &installmentRepository{db: db}
}

// table maps the kind to its table name. Kind is a closed enum, so the
// interpolation below stays injection-free.
func table(kind domain.InstallmentKind) string {
	return kind.Collection()
}

// BulkInsert joins the transaction carried in ctx when there is one; a
// standalone call opens its own so the schedule still lands atomically.
func (r *installmentRepository) BulkInsert(ctx context.Context, kind domain.InstallmentKind, installments []*domain.Installment) error {
	if _, ok := txFrom(ctx); ok {
		return r.bulkInsert(ctx, ext(ctx, r.db), kind, installments)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.bulkInsert(ctx, tx, kind, installments); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *installmentRepository) bulkInsert(ctx context.Context, e sqlx.ExtContext, kind domain.InstallmentKind, installments []*domain.Installment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, due_date, amount_due, amount_paid, status, paid_at, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, table(kind))

	now := time.Now().UTC()
	for _, inst := range installments {
		inst.Version = 1
		inst.CreatedAt = now
		inst.UpdatedAt = now

		_, err := e.ExecContext(ctx, query,
			inst.ID,
			inst.OwnerID,
			inst.DueDate,
			inst.AmountDue,
			inst.AmountPaid,
			inst.Status,
			inst.PaidAt,
			inst.Version,
			inst.CreatedAt,
			inst.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *installmentRepository) GetByID(ctx context.Context, kind domain.InstallmentKind, id uuid.UUID) (*domain.Installment, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, due_date, amount_due, amount_paid, status, paid_at, version, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, table(kind))

	var inst domain.Installment
	if err := r.db.GetContext(ctx, &inst, query, id); err != nil {
		return nil, err
	}

	return &inst, nil
}

func (r *installmentRepository) ListByOwner(ctx context.Context, kind domain.InstallmentKind, ownerID uuid.UUID) ([]*domain.Installment, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, due_date, amount_due, amount_paid, status, paid_at, version, created_at, updated_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY due_date
	`, table(kind))

	var installments []*domain.Installment
	if err := r.db.SelectContext(ctx, &installments, query, ownerID); err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *installmentRepository) ListDueBetween(ctx context.Context, kind domain.InstallmentKind, from, to domain.Date) ([]*domain.Installment, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, due_date, amount_due, amount_paid, status, paid_at, version, created_at, updated_at
		FROM %s
		WHERE due_date >= $1 AND due_date <= $2
		ORDER BY due_date
	`, table(kind))

	var installments []*domain.Installment
	if err := r.db.SelectContext(ctx, &installments, query, from, to); err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *installmentRepository) UpdatePayment(ctx context.Context, kind domain.InstallmentKind, installment *domain.Installment) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET amount_paid = $2, status = $3, paid_at = $4, version = version + 1, updated_at = $5
		WHERE id = $1 AND version = $6
	`, table(kind))

	result, err := r.db.ExecContext(ctx, query,
		installment.ID,
		installment.AmountPaid,
		installment.Status,
		installment.PaidAt,
		time.Now().UTC(),
		installment.Version,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// The row was loaded moments ago, so a miss means another
		// session won the write.
		return apperrors.ErrVersionMismatch
	}

	installment.Version++
	return nil
}

func (r *installmentRepository) ListUnpaidReceivables(ctx context.Context, from, to domain.Date) ([]*domain.UnpaidReceivable, error) {
	query := `
		SELECT rr.id, rr.owner_id, rr.due_date, rr.amount_due, rr.amount_paid, rr.status,
		       rr.paid_at, rr.version, rr.created_at, rr.updated_at,
		       cl.name AS client_name, cl.phone AS client_phone, u.name AS unit_name
		FROM rent_receivables rr
		JOIN contracts c ON c.id = rr.owner_id
		JOIN clients cl ON cl.id = c.client_id
		JOIN units u ON u.id = c.unit_id
		WHERE rr.due_date >= $1 AND rr.due_date <= $2
		  AND rr.amount_due > rr.amount_paid
		ORDER BY rr.due_date
	`

	var receivables []*domain.UnpaidReceivable
	if err := r.db.SelectContext(ctx, &receivables, query, from, to); err != nil {
		return nil, err
	}

	return receivables, nil
}
