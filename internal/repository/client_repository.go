package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aqarat/estate-engine/internal/domain"
)

type clientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (id, name, contact_person, phone, email, whatsapp_number, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		client.ID,
		client.Name,
		client.ContactPerson,
		client.Phone,
		client.Email,
		client.WhatsappNumber,
		client.Address,
		client.CreatedAt,
		client.UpdatedAt,
	)

	return err
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	query := `
		SELECT id, name, contact_person, phone, email, whatsapp_number, address, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	var client domain.Client
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &client, query, id); err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	query := `
		SELECT id, name, contact_person, phone, email, whatsapp_number, address, created_at, updated_at
		FROM clients
		ORDER BY name
	`

	var clients []*domain.Client
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &clients, query); err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET name = $2, contact_person = $3, phone = $4, email = $5, whatsapp_number = $6, address = $7, updated_at = $8
		WHERE id = $1
	`

	client.UpdatedAt = time.Now().UTC()

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		client.ID,
		client.Name,
		client.ContactPerson,
		client.Phone,
		client.Email,
		client.WhatsappNumber,
		client.Address,
		client.UpdatedAt,
	)

	return err
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := ext(ctx, r.db).ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}
