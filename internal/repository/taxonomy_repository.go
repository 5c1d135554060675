package repository

import (
	"context"

	"jobboard/internal/database"

	"github.com/google/uuid"
)

type NamedRef struct {
	ID   uuid.UUID
	Name string
}

// TaxonomyRepository serves the read-only reference data (categories and
// skills) and resolves id sets to display names.
type TaxonomyRepository interface {
	ListCategories(ctx context.Context) ([]NamedRef, error)
	ListSkills(ctx context.Context) ([]NamedRef, error)
	SkillNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type PostgresTaxonomyRepository struct {
	db database.DB
}

func NewPostgresTaxonomyRepository(db database.DB) *PostgresTaxonomyRepository {
	return &PostgresTaxonomyRepository{db: db}
}

func (r *PostgresTaxonomyRepository) ListCategories(ctx context.Context) ([]NamedRef, error) {
	return r.listNamed(ctx, `SELECT id, name FROM categories ORDER BY name ASC`)
}

func (r *PostgresTaxonomyRepository) ListSkills(ctx context.Context) ([]NamedRef, error) {
	return r.listNamed(ctx, `SELECT id, name FROM skills ORDER BY name ASC`)
}

func (r *PostgresTaxonomyRepository) listNamed(ctx context.Context, query string) ([]NamedRef, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]NamedRef, 0)
	for rows.Next() {
		var n NamedRef
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresTaxonomyRepository) SkillNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, name FROM skills WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
