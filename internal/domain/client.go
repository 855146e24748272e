package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client is a tenant renting one or more units. Besides the primary phone
// there is a named contact person and a separate WhatsApp number, since
// reminders for commercial tenants often go to someone other than the
// signatory.
type Client struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	ContactPerson  string    `json:"contact_person" db:"contact_person"`
	Phone          string    `json:"phone" db:"phone"`
	Email          string    `json:"email" db:"email"`
	WhatsappNumber string    `json:"whatsapp_number" db:"whatsapp_number"`
	Address        string    `json:"address" db:"address"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type ClientRequest struct {
	Name           string `json:"name" validate:"required"`
	ContactPerson  string `json:"contact_person"`
	Phone          string `json:"phone"`
	Email          string `json:"email" validate:"omitempty,email"`
	WhatsappNumber string `json:"whatsapp_number"`
	Address        string `json:"address"`
}
