package repository

import (
	"context"
	"database/sql"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied")
)

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	ListBySeeker(ctx context.Context, seekerID uuid.UUID) ([]application.Application, error)
	ListAllStatuses(ctx context.Context) ([]application.Status, error)
	// UpdateStatus persists the new status and, when rejectOthers is set,
	// rejects every other non-terminal application for the same job in the
	// same transaction.
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, rejectOthers bool) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationSelect = `
SELECT id, job_id, seeker_id, cv_id, status, matched_skills_count, cover_letter, created_at, updated_at
FROM applications`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, seeker_id, cv_id, status, matched_skills_count, cover_letter)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (job_id, seeker_id) DO NOTHING`,
		a.ID, a.JobID, a.SeekerID, a.CVID, string(a.Status), a.MatchedSkillsCount, a.CoverLetter,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyApplied
	}
	return nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, applicationSelect+` WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE job_id = $1 ORDER BY created_at ASC`, jobID)
}

func (r *PostgresApplicationRepository) ListBySeeker(ctx context.Context, seekerID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE seeker_id = $1 ORDER BY created_at ASC`, seekerID)
}

func (r *PostgresApplicationRepository) list(ctx context.Context, query string, arg any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListAllStatuses(ctx context.Context) ([]application.Status, error) {
	rows, err := r.db.Query(ctx, `SELECT status FROM applications ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Status, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, application.Status(s))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, rejectOthers bool) error {
	return database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		affected, err := tx.Exec(ctx,
			`UPDATE applications SET status = $1, updated_at = now() WHERE id = $2`,
			string(status), id,
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrApplicationNotFound
		}

		if !rejectOthers {
			return nil
		}
		_, err = tx.Exec(ctx,
			`UPDATE applications SET status = $1, updated_at = now()
			 WHERE job_id = (SELECT job_id FROM applications WHERE id = $2)
			   AND id <> $2
			   AND status NOT IN ($3, $4)`,
			string(application.StatusRejected), id,
			string(application.StatusAccepted), string(application.StatusRejected),
		)
		return err
	})
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	if err := row.Scan(&a.ID, &a.JobID, &a.SeekerID, &a.CVID, &status,
		&a.MatchedSkillsCount, &a.CoverLetter, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
