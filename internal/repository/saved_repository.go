package repository

import (
	"context"

	"jobboard/internal/database"

	"github.com/google/uuid"
)

// SavedItemRepository persists bookmarks. The (actor, subject) pair is the
// primary key, so saving is naturally idempotent: a duplicate save affects
// zero rows and the reported bool tells the caller whether membership changed.
type SavedItemRepository interface {
	SaveJob(ctx context.Context, seekerID, jobID uuid.UUID) (bool, error)
	UnsaveJob(ctx context.Context, seekerID, jobID uuid.UUID) (bool, error)
	SavedJobIDs(ctx context.Context, seekerID uuid.UUID) ([]uuid.UUID, error)

	SaveCV(ctx context.Context, providerID, cvID uuid.UUID) (bool, error)
	UnsaveCV(ctx context.Context, providerID, cvID uuid.UUID) (bool, error)
	SavedCVIDs(ctx context.Context, providerID uuid.UUID) ([]uuid.UUID, error)
}

type PostgresSavedItemRepository struct {
	db database.DB
}

func NewPostgresSavedItemRepository(db database.DB) *PostgresSavedItemRepository {
	return &PostgresSavedItemRepository{db: db}
}

func (r *PostgresSavedItemRepository) SaveJob(ctx context.Context, seekerID, jobID uuid.UUID) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (job_id, seeker_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		jobID, seekerID,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresSavedItemRepository) UnsaveJob(ctx context.Context, seekerID, jobID uuid.UUID) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM saved_jobs WHERE job_id = $1 AND seeker_id = $2`,
		jobID, seekerID,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresSavedItemRepository) SavedJobIDs(ctx context.Context, seekerID uuid.UUID) ([]uuid.UUID, error) {
	return r.ids(ctx,
		`SELECT job_id FROM saved_jobs WHERE seeker_id = $1 ORDER BY created_at ASC`,
		seekerID,
	)
}

func (r *PostgresSavedItemRepository) SaveCV(ctx context.Context, providerID, cvID uuid.UUID) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO saved_cvs (cv_id, provider_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		cvID, providerID,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresSavedItemRepository) UnsaveCV(ctx context.Context, providerID, cvID uuid.UUID) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM saved_cvs WHERE cv_id = $1 AND provider_id = $2`,
		cvID, providerID,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresSavedItemRepository) SavedCVIDs(ctx context.Context, providerID uuid.UUID) ([]uuid.UUID, error) {
	return r.ids(ctx,
		`SELECT cv_id FROM saved_cvs WHERE provider_id = $1 ORDER BY created_at ASC`,
		providerID,
	)
}

func (r *PostgresSavedItemRepository) ids(ctx context.Context, query string, actorID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, query, actorID)
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
