package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/internal/ledger"
)

// PropertyRepository defines the interface for property data operations
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	List(ctx context.Context) ([]*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error

	// Delete removes the property; units, contracts and installments
	// hanging off it go with it via the schema's cascading constraints.
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnitRepository defines the interface for unit data operations
type UnitRepository interface {
	Create(ctx context.Context, unit *domain.Unit) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Unit, error)
	List(ctx context.Context, filter domain.UnitFilter) ([]*domain.Unit, error)
	Update(ctx context.Context, unit *domain.Unit) error

	// UpdateStatus flips a unit between vacant and occupied.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContractRepository defines the interface for contract data operations
type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error)

	// List joins the property, unit and client names the admin lists show.
	List(ctx context.Context) ([]*domain.ContractSummary, error)
	Update(ctx context.Context, contract *domain.Contract) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InstallmentRepository covers both installment collections; the kind
// argument selects lease_payments or rent_receivables.
type InstallmentRepository interface {
	// BulkInsert stores a freshly generated schedule in one transaction.
	BulkInsert(ctx context.Context, kind domain.InstallmentKind, installments []*domain.Installment) error

	GetByID(ctx context.Context, kind domain.InstallmentKind, id uuid.UUID) (*domain.Installment, error)
	ListByOwner(ctx context.Context, kind domain.InstallmentKind, ownerID uuid.UUID) ([]*domain.Installment, error)

	// ListDueBetween returns installments with from <= due_date <= to,
	// ordered by due date.
	ListDueBetween(ctx context.Context, kind domain.InstallmentKind, from, to domain.Date) ([]*domain.Installment, error)

	// UpdatePayment writes the new payment state only if the stored row
	// still carries the version the installment was loaded with, and
	// bumps the version on success. A concurrent writer surfaces as
	// apperrors.ErrVersionMismatch.
	UpdatePayment(ctx context.Context, kind domain.InstallmentKind, installment *domain.Installment) error

	// ListUnpaidReceivables returns outstanding rent receivables in the
	// window joined with the client and unit shown on the dashboard.
	ListUnpaidReceivables(ctx context.Context, from, to domain.Date) ([]*domain.UnpaidReceivable, error)
}

// SummaryCache is the dashboard summary cache keyed by collection and
// window. A miss is reported as a nil summary, not an error.
type SummaryCache interface {
	Get(ctx context.Context, kind domain.InstallmentKind, from, to domain.Date) (*ledger.Summary, error)
	Set(ctx context.Context, kind domain.InstallmentKind, from, to domain.Date, summary ledger.Summary, ttl time.Duration) error

	// Invalidate drops every cached window for the kind; called after any
	// installment mutation or schedule generation.
	Invalidate(ctx context.Context, kind domain.InstallmentKind) error
}
