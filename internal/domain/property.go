package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OwnershipOwned  = "owned"
	OwnershipLeased = "leased"
)

// Property is a managed building. Lease fields are set iff the property is
// leased from a landlord rather than owned.
type Property struct {
	ID               uuid.UUID           `json:"id" db:"id"`
	Name             string              `json:"name" db:"name"`
	Landlord         string              `json:"landlord" db:"landlord"`
	Ownership        string              `json:"ownership" db:"ownership"`
	LeaseStart       Date                `json:"lease_start" db:"lease_start"`
	LeaseEnd         Date                `json:"lease_end" db:"lease_end"`
	LeaseAmount      decimal.NullDecimal `json:"lease_amount" db:"lease_amount"`
	PaymentFrequency Frequency           `json:"payment_frequency" db:"payment_frequency"`
	CreatedAt        time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at" db:"updated_at"`
}

// IsLeased reports whether the property carries lease terms.
func (p *Property) IsLeased() bool {
	return p.Ownership == OwnershipLeased
}

// PropertyRequest is the create/update payload. The lease fields are
// required when ownership is leased and must be absent otherwise; that
// rule is enforced by a struct-level validation.
type PropertyRequest struct {
	Name             string              `json:"name" validate:"required"`
	Landlord         string              `json:"landlord"`
	Ownership        string              `json:"ownership" validate:"required,oneof=owned leased"`
	LeaseStart       Date                `json:"lease_start"`
	LeaseEnd         Date                `json:"lease_end"`
	LeaseAmount      decimal.NullDecimal `json:"lease_amount"`
	PaymentFrequency string              `json:"payment_frequency"`
}

type CreatePropertyResponse struct {
	Property *Property      `json:"property"`
	Schedule []*Installment `json:"schedule"`
}
