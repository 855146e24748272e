package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract binds a client to a unit for a period and is the trigger for
// generating the rent receivable schedule.
type Contract struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	PropertyID       uuid.UUID       `json:"property_id" db:"property_id"`
	UnitID           uuid.UUID       `json:"unit_id" db:"unit_id"`
	ClientID         uuid.UUID       `json:"client_id" db:"client_id"`
	StartDate        Date            `json:"start_date" db:"start_date"`
	EndDate          Date            `json:"end_date" db:"end_date"`
	RentAmount       decimal.Decimal `json:"rent_amount" db:"rent_amount"`
	PaymentFrequency Frequency       `json:"payment_frequency" db:"payment_frequency"`
	SecurityDeposit  decimal.Decimal `json:"security_deposit" db:"security_deposit"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// ContractSummary is a contract row joined with the names the admin lists
// display alongside it.
type ContractSummary struct {
	Contract
	PropertyName string `json:"property_name" db:"property_name"`
	UnitName     string `json:"unit_name" db:"unit_name"`
	ClientName   string `json:"client_name" db:"client_name"`
}

type ContractRequest struct {
	PropertyID       uuid.UUID       `json:"property_id" validate:"required"`
	UnitID           uuid.UUID       `json:"unit_id" validate:"required"`
	ClientID         uuid.UUID       `json:"client_id" validate:"required"`
	StartDate        Date            `json:"start_date" validate:"required"`
	EndDate          Date            `json:"end_date" validate:"required"`
	RentAmount       decimal.Decimal `json:"rent_amount" validate:"decimal_gte=0"`
	PaymentFrequency string          `json:"payment_frequency" validate:"required"`
	SecurityDeposit  decimal.Decimal `json:"security_deposit" validate:"decimal_gte=0"`
}

type CreateContractResponse struct {
	Contract *Contract      `json:"contract"`
	Schedule []*Installment `json:"schedule"`
}
