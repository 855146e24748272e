package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	UnitStatusVacant   = "vacant"
	UnitStatusOccupied = "occupied"
)

// Unit belongs to exactly one property. A unit referenced by an active
// contract should be occupied; the service layer keeps that in sync.
type Unit struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	Name       string    `json:"name" db:"name"`
	UnitType   string    `json:"unit_type" db:"unit_type"`
	Floor      string    `json:"floor" db:"floor"`
	Size       string    `json:"size" db:"size"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

type UnitRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	UnitType   string    `json:"unit_type"`
	Floor      string    `json:"floor"`
	Size       string    `json:"size"`
	Status     string    `json:"status" validate:"omitempty,oneof=vacant occupied"`
}

// UnitFilter narrows unit listings; zero fields match everything.
type UnitFilter struct {
	PropertyID uuid.UUID
	Status     string
}
