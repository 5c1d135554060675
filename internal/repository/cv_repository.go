package repository

import (
	"context"
	"database/sql"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/cv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCVNotFound = errors.New("cv not found")

type CVRepository interface {
	Create(ctx context.Context, c cv.CV) error
	Update(ctx context.Context, c cv.CV) error
	GetByID(ctx context.Context, id uuid.UUID) (cv.CV, error)
	ListBySeeker(ctx context.Context, seekerID uuid.UUID) ([]cv.CV, error)
	SkillIDsByCV(ctx context.Context, cvID uuid.UUID) ([]uuid.UUID, error)
}

type PostgresCVRepository struct {
	db database.DB
}

func NewPostgresCVRepository(db database.DB) *PostgresCVRepository {
	return &PostgresCVRepository{db: db}
}

func (r *PostgresCVRepository) Create(ctx context.Context, c cv.CV) error {
	return database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO cvs (id, seeker_id, cover_letter) VALUES ($1, $2, $3)`,
			c.ID, c.SeekerID, c.CoverLetter,
		)
		if err != nil {
			return err
		}
		return insertCVChildren(ctx, tx, c)
	})
}

func (r *PostgresCVRepository) Update(ctx context.Context, c cv.CV) error {
	return database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		affected, err := tx.Exec(ctx,
			`UPDATE cvs SET cover_letter = $1, updated_at = now() WHERE id = $2 AND seeker_id = $3`,
			c.CoverLetter, c.ID, c.SeekerID,
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrCVNotFound
		}

		for _, table := range []string{"cv_skills", "educations", "job_experiences"} {
			if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE cv_id = $1`, c.ID); err != nil {
				return err
			}
		}
		return insertCVChildren(ctx, tx, c)
	})
}

func insertCVChildren(ctx context.Context, tx database.Tx, c cv.CV) error {
	for _, id := range c.SkillIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO cv_skills (cv_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			c.ID, id,
		); err != nil {
			return err
		}
	}

	for i, e := range c.Educations {
		id := e.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO educations (id, cv_id, school, degree, start_date, end_date, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, c.ID, e.School, e.Degree, e.StartDate, e.EndDate, i,
		); err != nil {
			return err
		}
	}

	for i, e := range c.Experiences {
		id := e.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO job_experiences (id, cv_id, company, title, description, start_date, end_date, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, c.ID, e.Company, e.Title, e.Description, e.StartDate, e.EndDate, i,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresCVRepository) GetByID(ctx context.Context, id uuid.UUID) (cv.CV, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, seeker_id, cover_letter, created_at, updated_at FROM cvs WHERE id = $1`, id)

	var c cv.CV
	if err := row.Scan(&c.ID, &c.SeekerID, &c.CoverLetter, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return cv.CV{}, ErrCVNotFound
		}
		return cv.CV{}, err
	}

	if err := r.loadChildren(ctx, &c); err != nil {
		return cv.CV{}, err
	}
	return c, nil
}

func (r *PostgresCVRepository) ListBySeeker(ctx context.Context, seekerID uuid.UUID) ([]cv.CV, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, seeker_id, cover_letter, created_at, updated_at
		 FROM cvs WHERE seeker_id = $1 ORDER BY created_at ASC`,
		seekerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cv.CV, 0)
	for rows.Next() {
		var c cv.CV
		if err := rows.Scan(&c.ID, &c.SeekerID, &c.CoverLetter, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := r.loadChildren(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PostgresCVRepository) SkillIDsByCV(ctx context.Context, cvID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT skill_id FROM cv_skills WHERE cv_id = $1`, cvID)
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

func (r *PostgresCVRepository) loadChildren(ctx context.Context, c *cv.CV) error {
	var err error
	c.SkillIDs, err = r.SkillIDsByCV(ctx, c.ID)
	if err != nil {
		return err
	}

	eduRows, err := r.db.Query(ctx,
		`SELECT id, school, degree, start_date, end_date
		 FROM educations WHERE cv_id = $1 ORDER BY position ASC`,
		c.ID,
	)
	if err != nil {
		return err
	}
	defer eduRows.Close()

	c.Educations = make([]cv.Education, 0)
	for eduRows.Next() {
		var e cv.Education
		if err := eduRows.Scan(&e.ID, &e.School, &e.Degree, &e.StartDate, &e.EndDate); err != nil {
			return err
		}
		e.Ongoing = e.EndDate == nil
		c.Educations = append(c.Educations, e)
	}
	if err := eduRows.Err(); err != nil {
		return err
	}

	expRows, err := r.db.Query(ctx,
		`SELECT id, company, title, description, start_date, end_date
		 FROM job_experiences WHERE cv_id = $1 ORDER BY position ASC`,
		c.ID,
	)
	if err != nil {
		return err
	}
	defer expRows.Close()

	c.Experiences = make([]cv.Experience, 0)
	for expRows.Next() {
		var e cv.Experience
		if err := expRows.Scan(&e.ID, &e.Company, &e.Title, &e.Description, &e.StartDate, &e.EndDate); err != nil {
			return err
		}
		e.Ongoing = e.EndDate == nil
		c.Experiences = append(c.Experiences, e)
	}
	return expRows.Err()
}
