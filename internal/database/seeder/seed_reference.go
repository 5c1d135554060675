package seeder

import (
	"context"

	"jobboard/internal/database"
)

type CitiesSeeder struct{}

func (CitiesSeeder) Name() string { return "cities" }

func (CitiesSeeder) Run(ctx context.Context, db database.DB) error {
	names := []string{
		"Tirana",
		"Durres",
		"Vlore",
		"Shkoder",
		"Elbasan",
		"Korce",
		"Fier",
		"Berat",
	}
	return insertNames(ctx, db,
		`INSERT INTO cities (id, city_name) VALUES (gen_random_uuid(), $1) ON CONFLICT (city_name) DO NOTHING`,
		names,
	)
}

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	names := []string{
		"Go",
		"JavaScript",
		"TypeScript",
		"Python",
		"Java",
		"PostgreSQL",
		"Redis",
		"React",
		"Docker",
		"Kubernetes",
		"AWS",
		"Project Management",
		"Graphic Design",
		"Accounting",
		"Customer Support",
	}
	return insertNames(ctx, db,
		`INSERT INTO skills (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT (name) DO NOTHING`,
		names,
	)
}

type CategoriesSeeder struct{}

func (CategoriesSeeder) Name() string { return "categories" }

func (CategoriesSeeder) Run(ctx context.Context, db database.DB) error {
	names := []string{
		"Engineering",
		"Design",
		"Marketing",
		"Sales",
		"Finance",
		"Operations",
		"Human Resources",
		"Customer Service",
	}
	return insertNames(ctx, db,
		`INSERT INTO categories (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT (name) DO NOTHING`,
		names,
	)
}

func insertNames(ctx context.Context, db database.DB, query string, names []string) error {
	return database.WithinTx(ctx, db, func(tx database.Tx) error {
		for _, name := range names {
			if _, err := tx.Exec(ctx, query, name); err != nil {
				return err
			}
		}
		return nil
	})
}
