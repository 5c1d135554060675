package seeder

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/database"
	"jobboard/internal/domain/account"
)

// AdminSeeder provisions the bootstrap admin account from the environment.
// With no credentials configured it is a no-op, so deployments that manage
// admins elsewhere are unaffected.
type AdminSeeder struct {
	Email    string
	Password string
}

func (AdminSeeder) Name() string { return "admin account" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	password := strings.TrimSpace(s.Password)
	if email == "" && password == "" {
		return nil
	}
	if email == "" || password == "" {
		return fmt.Errorf("admin email and password must be set together")
	}
	if len(password) < 8 {
		return fmt.Errorf("admin password too short")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// An existing account with this email keeps its password and role; the
	// seeder never rotates credentials.
	_, err = db.Exec(ctx,
		`INSERT INTO accounts (id, email, password_hash, role)
		 VALUES (gen_random_uuid(), $1, $2, $3)
		 ON CONFLICT (email) DO NOTHING`,
		email, string(hash), string(account.RoleAdmin),
	)
	return err
}
