// Package migration applies versioned SQL files (V<version>__<name>.sql) in
// order, once, guarded by a Postgres advisory lock so concurrent deploys
// cannot race each other.
package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
)

// One lock id for the whole cluster; every instance queues on it.
const advisoryLockID = 911404273

type Runner struct {
	Dir    string
	Logger *log.Logger
}

// script is one migration file, parsed and digested.
type script struct {
	version int64
	name    string
	file    string
	sql     string
	digest  string
}

func (r Runner) Run(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("migration: nil db")
	}

	dir := strings.TrimSpace(r.Dir)
	if dir == "" {
		dir = "migrations"
	}
	scripts, err := loadScripts(os.DirFS(dir))
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		return nil
	}

	if err := acquireLock(ctx, db); err != nil {
		return err
	}
	defer releaseLock(db)

	j := journal{db: db}
	if err := j.ensure(ctx); err != nil {
		return err
	}
	seen, err := j.entries(ctx)
	if err != nil {
		return err
	}

	pending := 0
	for _, s := range scripts {
		digest, done := seen[s.version]
		if done {
			if digest != s.digest {
				return fmt.Errorf("migration %s changed after being applied (digest %s, recorded %s)", s.file, s.digest, digest)
			}
			continue
		}
		if err := j.apply(ctx, s); err != nil {
			return err
		}
		r.logf("Migration applied | version=%d name=%s", s.version, s.name)
		pending++
	}
	if pending == 0 {
		r.logf("Migrations up to date | count=%d", len(scripts))
	}
	return nil
}

func (r Runner) logf(format string, args ...any) {
	if r.Logger == nil {
		return
	}
	r.Logger.Printf(format, args...)
}

// loadScripts reads every V<version>__<name>.sql at the root of fsys, sorted
// by version. Other files are ignored so a README can live alongside.
func loadScripts(fsys fs.FS) ([]script, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var scripts []script
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		version, name, ok := parseScriptName(e.Name())
		if !ok {
			continue
		}
		body, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(body)) == "" {
			return nil, fmt.Errorf("migration %s is empty", e.Name())
		}
		sum := sha256.Sum256(body)
		scripts = append(scripts, script{
			version: version,
			name:    name,
			file:    e.Name(),
			sql:     string(body),
			digest:  hex.EncodeToString(sum[:]),
		})
	}

	sort.Slice(scripts, func(i, j int) bool { return scripts[i].version < scripts[j].version })
	for i := 1; i < len(scripts); i++ {
		if scripts[i].version == scripts[i-1].version {
			return nil, fmt.Errorf("migrations %s and %s share version %d", scripts[i-1].file, scripts[i].file, scripts[i].version)
		}
	}
	return scripts, nil
}

// parseScriptName splits "V3__add_cities.sql" into (3, "add_cities", true).
func parseScriptName(filename string) (int64, string, bool) {
	if !strings.HasPrefix(filename, "V") || !strings.HasSuffix(filename, ".sql") {
		return 0, "", false
	}
	stem := strings.TrimSuffix(strings.TrimPrefix(filename, "V"), ".sql")
	numPart, name, found := strings.Cut(stem, "__")
	if !found || name == "" {
		return 0, "", false
	}
	version, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil || version <= 0 {
		return 0, "", false
	}
	return version, name, true
}

func acquireLock(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockID)
	return err
}

func releaseLock(db *sql.DB) {
	// Fresh context: the caller's may already be done.
	_, _ = db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, advisoryLockID)
}

// journal is the schema_migrations bookkeeping table.
type journal struct {
	db *sql.DB
}

func (j journal) ensure(ctx context.Context) error {
	_, err := j.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

// entries returns applied versions mapped to their recorded digest.
func (j journal) entries(ctx context.Context) (map[int64]string, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := map[int64]string{}
	for rows.Next() {
		var version int64
		var digest string
		if err := rows.Scan(&version, &digest); err != nil {
			return nil, err
		}
		seen[version] = digest
	}
	return seen, rows.Err()
}

// apply runs the script and records it in the same transaction, so a failed
// statement leaves neither schema change nor journal entry behind.
func (j journal) apply(ctx context.Context, s script) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.sql); err != nil {
		return fmt.Errorf("migration %s failed: %w", s.file, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		s.version, s.name, s.digest,
	); err != nil {
		return err
	}
	return tx.Commit()
}
