package repository

import (
	"context"
	"database/sql"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/seeker"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSeekerNotFound = errors.New("seeker not found")

type SeekerRepository interface {
	Create(ctx context.Context, s seeker.Seeker) error
	Update(ctx context.Context, s seeker.Seeker) error
	GetByID(ctx context.Context, id uuid.UUID) (seeker.Seeker, error)
	ListAll(ctx context.Context) ([]seeker.Seeker, error)
}

type PostgresSeekerRepository struct {
	db database.DB
}

func NewPostgresSeekerRepository(db database.DB) *PostgresSeekerRepository {
	return &PostgresSeekerRepository{db: db}
}

const seekerSelect = `
SELECT s.id, s.first_name, s.last_name, s.email, s.phonenumber, s.city_id, c.city_name,
       s.created_at, s.updated_at
FROM seekers s
LEFT JOIN cities c ON c.id = s.city_id`

func (r *PostgresSeekerRepository) Create(ctx context.Context, s seeker.Seeker) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO seekers (id, first_name, last_name, email, phonenumber, city_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.FirstName, s.LastName, s.Email, s.Phonenumber, s.CityID,
	)
	return err
}

func (r *PostgresSeekerRepository) Update(ctx context.Context, s seeker.Seeker) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE seekers
		 SET first_name = $1, last_name = $2, email = $3, phonenumber = $4, city_id = $5, updated_at = now()
		 WHERE id = $6`,
		s.FirstName, s.LastName, s.Email, s.Phonenumber, s.CityID, s.ID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSeekerNotFound
	}
	return nil
}

func (r *PostgresSeekerRepository) GetByID(ctx context.Context, id uuid.UUID) (seeker.Seeker, error) {
	row := r.db.QueryRow(ctx, seekerSelect+` WHERE s.id = $1`, id)
	return scanSeeker(row)
}

func (r *PostgresSeekerRepository) ListAll(ctx context.Context) ([]seeker.Seeker, error) {
	rows, err := r.db.Query(ctx, seekerSelect+` ORDER BY s.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]seeker.Seeker, 0)
	for rows.Next() {
		s, err := scanSeeker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSeeker(row database.Row) (seeker.Seeker, error) {
	var s seeker.Seeker
	if err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phonenumber,
		&s.CityID, &s.CityName, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return seeker.Seeker{}, ErrSeekerNotFound
		}
		return seeker.Seeker{}, err
	}
	return s, nil
}
