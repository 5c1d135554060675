package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type JobListFilter struct {
	City       string
	Type       string
	Search     string
	ProviderID uuid.UUID

	Limit  int
	Offset int
}

type JobRepository interface {
	Create(ctx context.Context, p job.Posting) error
	Update(ctx context.Context, p job.Posting) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	List(ctx context.Context, f JobListFilter) ([]job.Posting, int, error)
	ListCityNames(ctx context.Context) ([]string, error)
	SkillIDsByJob(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobSelect = `
SELECT j.id, j.provider_id, j.title, j.description, j.salary, j.type,
       j.city_id, c.city_name, j.expiry_date, j.cover_letter_required,
       j.question_required, j.created_at, j.updated_at
FROM job_postings j
LEFT JOIN cities c ON c.id = j.city_id`

func (r *PostgresJobRepository) Create(ctx context.Context, p job.Posting) error {
	return database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO job_postings
			 (id, provider_id, title, description, salary, type, city_id, expiry_date, cover_letter_required, question_required)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.ID, p.ProviderID, p.Title, p.Description, p.Salary, string(p.Type),
			p.CityID, p.ExpiryDate, p.CoverLetterRequired, p.QuestionRequired,
		)
		if err != nil {
			return err
		}
		return insertJobJoins(ctx, tx, p)
	})
}

func (r *PostgresJobRepository) Update(ctx context.Context, p job.Posting) error {
	return database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		affected, err := tx.Exec(ctx,
			`UPDATE job_postings
			 SET title = $1, description = $2, salary = $3, type = $4, city_id = $5,
			     expiry_date = $6, cover_letter_required = $7, question_required = $8, updated_at = now()
			 WHERE id = $9`,
			p.Title, p.Description, p.Salary, string(p.Type), p.CityID,
			p.ExpiryDate, p.CoverLetterRequired, p.QuestionRequired, p.ID,
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrJobNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM job_categories WHERE job_id = $1`, p.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM job_skills WHERE job_id = $1`, p.ID); err != nil {
			return err
		}
		return insertJobJoins(ctx, tx, p)
	})
}

func insertJobJoins(ctx context.Context, tx database.Tx, p job.Posting) error {
	for _, id := range p.CategoryIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO job_categories (job_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			p.ID, id,
		); err != nil {
			return err
		}
	}
	for _, id := range p.SkillIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO job_skills (job_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			p.ID, id,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id)
	p, err := scanJob(row)
	if err != nil {
		return job.Posting{}, err
	}

	p.CategoryIDs, err = r.joinIDs(ctx, `SELECT category_id FROM job_categories WHERE job_id = $1`, id)
	if err != nil {
		return job.Posting{}, err
	}
	p.SkillIDs, err = r.joinIDs(ctx, `SELECT skill_id FROM job_skills WHERE job_id = $1`, id)
	if err != nil {
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, f JobListFilter) ([]job.Posting, int, error) {
	where, args := jobListWhere(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM job_postings j LEFT JOIN cities c ON c.id = j.city_id` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf("%s%s ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d",
		jobSelect, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func jobListWhere(f JobListFilter) (string, []any) {
	conds := make([]string, 0, 4)
	args := make([]any, 0, 4)

	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if strings.TrimSpace(f.City) != "" {
		add("c.city_name ILIKE $%d", strings.TrimSpace(f.City))
	}
	if strings.TrimSpace(f.Type) != "" {
		add("j.type = $%d", strings.TrimSpace(f.Type))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(j.title ILIKE $%d OR j.description ILIKE $%d)", n, n))
	}
	if f.ProviderID != uuid.Nil {
		add("j.provider_id = $%d", f.ProviderID)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresJobRepository) ListCityNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(c.city_name, '')
		 FROM job_postings j
		 LEFT JOIN cities c ON c.id = j.city_id
		 ORDER BY j.created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) SkillIDsByJob(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	return r.joinIDs(ctx, `SELECT skill_id FROM job_skills WHERE job_id = $1`, jobID)
}

func (r *PostgresJobRepository) joinIDs(ctx context.Context, query string, jobID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Posting, error) {
	var p job.Posting
	var typ string
	if err := row.Scan(&p.ID, &p.ProviderID, &p.Title, &p.Description, &p.Salary, &typ,
		&p.CityID, &p.CityName, &p.ExpiryDate, &p.CoverLetterRequired,
		&p.QuestionRequired, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	p.Type = job.Type(typ)
	return p, nil
}
