package seeder

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/database"
)

type execCall struct {
	query string
	args  []any
}

type fakeDB struct {
	execs      []execCall
	committed  int
	rolledBack int
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	f.execs = append(f.execs, execCall{query: query, args: args})
	return 1, nil
}
func (f *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row        { return nil }
func (f *fakeDB) Begin(context.Context) (database.Tx, error)                   { return &fakeTx{db: f}, nil }
func (f *fakeDB) SQLDB() *sql.DB                                               { return nil }

type fakeTx struct {
	db        *fakeDB
	committed bool
}

func (t *fakeTx) Exec(_ context.Context, query string, args ...any) (int64, error) {
	t.db.execs = append(t.db.execs, execCall{query: query, args: args})
	return 1, nil
}
func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row        { return nil }
func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	t.db.committed++
	return nil
}
func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.db.rolledBack++
	}
	return nil
}

func TestReferenceSeeders_InsertIdempotently(t *testing.T) {
	db := &fakeDB{}
	runner := Runner{Seeders: []Seeder{CitiesSeeder{}, SkillsSeeder{}, CategoriesSeeder{}}}

	if err := runner.Run(context.Background(), db); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(db.execs) == 0 {
		t.Fatalf("expected reference rows to be written")
	}
	for _, call := range db.execs {
		if !strings.Contains(call.query, "ON CONFLICT") || !strings.Contains(call.query, "DO NOTHING") {
			t.Fatalf("seed insert must be idempotent: %s", call.query)
		}
	}
	if db.committed != 3 {
		t.Fatalf("expected one commit per seeder, got %d", db.committed)
	}
	if db.rolledBack != 0 {
		t.Fatalf("unexpected rollbacks: %d", db.rolledBack)
	}
}

func TestAdminSeeder_SkipsWhenUnconfigured(t *testing.T) {
	db := &fakeDB{}
	if err := (AdminSeeder{}).Run(context.Background(), db); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(db.execs) != 0 {
		t.Fatalf("unconfigured admin seeder must not write: %v", db.execs)
	}
}

func TestAdminSeeder_RejectsHalfConfiguredCredentials(t *testing.T) {
	db := &fakeDB{}
	if err := (AdminSeeder{Email: "ops@example.com"}).Run(context.Background(), db); err == nil {
		t.Fatalf("email without password must be rejected")
	}
	if err := (AdminSeeder{Email: "ops@example.com", Password: "short"}).Run(context.Background(), db); err == nil {
		t.Fatalf("short admin password must be rejected")
	}
	if len(db.execs) != 0 {
		t.Fatalf("rejected config must not write: %v", db.execs)
	}
}

func TestAdminSeeder_StoresHashedAdminAccount(t *testing.T) {
	db := &fakeDB{}
	s := AdminSeeder{Email: "  Ops@Example.com ", Password: "super-secret-pw"}

	if err := s.Run(context.Background(), db); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(db.execs) != 1 {
		t.Fatalf("expected one insert, got %d", len(db.execs))
	}

	call := db.execs[0]
	if !strings.Contains(call.query, "ON CONFLICT (email) DO NOTHING") {
		t.Fatalf("admin insert must not overwrite an existing account: %s", call.query)
	}
	if call.args[0] != "ops@example.com" {
		t.Fatalf("email must be normalized, got %v", call.args[0])
	}
	hash, _ := call.args[1].(string)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("super-secret-pw")); err != nil {
		t.Fatalf("stored value must be a bcrypt hash of the password: %v", err)
	}
	if call.args[2] != "admin" {
		t.Fatalf("expected admin role, got %v", call.args[2])
	}
}
