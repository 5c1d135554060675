package repository

import (
	"context"
	"database/sql"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/provider"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProviderNotFound = errors.New("provider not found")

type ProviderRepository interface {
	Create(ctx context.Context, p provider.Provider) error
	Update(ctx context.Context, p provider.Provider) error
	GetByID(ctx context.Context, id uuid.UUID) (provider.Provider, error)
}

type PostgresProviderRepository struct {
	db database.DB
}

func NewPostgresProviderRepository(db database.DB) *PostgresProviderRepository {
	return &PostgresProviderRepository{db: db}
}

const providerSelect = `
SELECT p.id, p.company_name, p.email, p.phonenumber, p.city_id, c.city_name,
       p.created_at, p.updated_at
FROM providers p
LEFT JOIN cities c ON c.id = p.city_id`

func (r *PostgresProviderRepository) Create(ctx context.Context, p provider.Provider) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO providers (id, company_name, email, phonenumber, city_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.CompanyName, p.Email, p.Phonenumber, p.CityID,
	)
	return err
}

func (r *PostgresProviderRepository) Update(ctx context.Context, p provider.Provider) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE providers
		 SET company_name = $1, email = $2, phonenumber = $3, city_id = $4, updated_at = now()
		 WHERE id = $5`,
		p.CompanyName, p.Email, p.Phonenumber, p.CityID, p.ID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProviderNotFound
	}
	return nil
}

func (r *PostgresProviderRepository) GetByID(ctx context.Context, id uuid.UUID) (provider.Provider, error) {
	row := r.db.QueryRow(ctx, providerSelect+` WHERE p.id = $1`, id)

	var p provider.Provider
	if err := row.Scan(&p.ID, &p.CompanyName, &p.Email, &p.Phonenumber,
		&p.CityID, &p.CityName, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return provider.Provider{}, ErrProviderNotFound
		}
		return provider.Provider{}, err
	}
	return p, nil
}
