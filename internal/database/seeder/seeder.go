// Package seeder fills reference tables the application assumes are
// populated: cities for the location filters and charts, skills and
// categories for postings and CVs, and the bootstrap admin account. Every
// seeder is idempotent, so running it on every start is safe.
package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}
