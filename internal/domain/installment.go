package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settlement status of an installment. Status is a pure function of
// amount_paid versus amount_due; see ledger.DeriveStatus.
const (
	InstallmentStatusPending = "pending"
	InstallmentStatusPartial = "partial"
	InstallmentStatusPaid    = "paid"
)

// InstallmentKind selects one of the two installment collections.
type InstallmentKind string

const (
	// KindLease marks installments the business owes a landlord under a
	// leased property.
	KindLease InstallmentKind = "lease"
	// KindRent marks installments a client owes the business under a
	// contract.
	KindRent InstallmentKind = "rent"
)

func ParseInstallmentKind(s string) (InstallmentKind, error) {
	switch InstallmentKind(s) {
	case KindLease:
		return KindLease, nil
	case KindRent:
		return KindRent, nil
	default:
		return "", fmt.Errorf("unknown installment kind %q", s)
	}
}

// Collection returns the backing collection name for the kind.
func (k InstallmentKind) Collection() string {
	if k == KindLease {
		return "lease_payments"
	}
	return "rent_receivables"
}

// Installment is one scheduled due-amount record: a lease payment (owner is
// a property) or a rent receivable (owner is a contract).
type Installment struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	OwnerID    uuid.UUID       `json:"owner_id" db:"owner_id"`
	DueDate    Date            `json:"due_date" db:"due_date"`
	AmountDue  decimal.Decimal `json:"amount_due" db:"amount_due"`
	AmountPaid decimal.Decimal `json:"amount_paid" db:"amount_paid"`
	Status     string          `json:"status" db:"status"`
	PaidAt     Date            `json:"paid_at" db:"paid_at"`
	Version    int             `json:"version" db:"version"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// UnpaidReceivable is a rent receivable with the client and unit details
// the dashboard's unpaid list displays.
type UnpaidReceivable struct {
	Installment
	ClientName  string `json:"client_name" db:"client_name"`
	ClientPhone string `json:"client_phone" db:"client_phone"`
	UnitName    string `json:"unit_name" db:"unit_name"`
}

type ApplyPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,decimal_gt=0"`
}

type ScheduleResponse struct {
	OwnerID  uuid.UUID      `json:"owner_id"`
	Schedule []*Installment `json:"schedule"`
}
