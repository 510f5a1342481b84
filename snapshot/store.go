// SPDX-License-Identifier: MIT

// Package snapshot persists ziptie bundle listings in a SQLite database so
// that a long run can be inspected (or rendered) after the fact. The engine
// never depends on it; the command saves a snapshot every N steps.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/ziptie/logging"
	"github.com/katalvlaran/ziptie/ziptie"
)

// ErrRunNotFound indicates an unknown run id, or a run with no snapshots.
var ErrRunNotFound = errors.New("snapshot: run not found")

// Run is one recorded ZipTie session.
type Run struct {
	ID        string
	Name      string
	Level     int
	MaxCables int
	CreatedAt time.Time
}

// Store wraps the SQLite connection.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the snapshot database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer; keeps :memory: databases on a single connection too.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	logging.Debug("snapshot", "opened %s", path)

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the schema if needed.
func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		level INTEGER NOT NULL,
		max_cables INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		step INTEGER NOT NULL,
		taken_at DATETIME NOT NULL,
		PRIMARY KEY (run_id, step)
	);

	CREATE TABLE IF NOT EXISTS bundle_cables (
		run_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		bundle INTEGER NOT NULL,
		cable INTEGER NOT NULL,
		PRIMARY KEY (run_id, step, bundle, cable),
		FOREIGN KEY (run_id, step) REFERENCES snapshots(run_id, step) ON DELETE CASCADE
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// NewRun registers a run and returns its id.
func (s *Store) NewRun(ctx context.Context, name string, level, maxCables int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, name, level, max_cables, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, level, maxCables, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	return id, nil
}

// Save stores d as the snapshot of runID at step, replacing any earlier
// snapshot for the same step. All rows are written in one transaction.
func (s *Store) Save(ctx context.Context, runID string, step uint64, d ziptie.Description) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("lookup run: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("save %s: %w", runID, ErrRunNotFound)
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM snapshots WHERE run_id = ? AND step = ?`, runID, step); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (run_id, step, taken_at) VALUES (?, ?, ?)`,
		runID, step, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO bundle_cables (run_id, step, bundle, cable) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	for _, b := range d.Bundles {
		for _, c := range b.Cables {
			if _, err = stmt.ExecContext(ctx, runID, step, b.Bundle, c); err != nil {
				return fmt.Errorf("insert bundle %d cable %d: %w", b.Bundle, c, err)
			}
		}
	}

	return tx.Commit()
}

// Latest returns the most recent snapshot of runID and its step.
func (s *Store) Latest(ctx context.Context, runID string) (uint64, ziptie.Description, error) {
	var (
		run  Run
		step int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT r.name, r.level, MAX(s.step)
		   FROM runs r JOIN snapshots s ON s.run_id = r.id
		  WHERE r.id = ?
		  GROUP BY r.id`, runID).Scan(&run.Name, &run.Level, &step)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ziptie.Description{}, fmt.Errorf("latest %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return 0, ziptie.Description{}, fmt.Errorf("latest %s: %w", runID, err)
	}

	d, err := s.describe(ctx, runID, step, run)
	if err != nil {
		return 0, ziptie.Description{}, err
	}

	return uint64(step), d, nil
}

// describe rebuilds a Description from the bundle_cables rows.
func (s *Store) describe(ctx context.Context, runID string, step int64, run Run) (ziptie.Description, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT bundle, cable FROM bundle_cables
		  WHERE run_id = ? AND step = ?
		  ORDER BY bundle, cable`, runID, step)
	if err != nil {
		return ziptie.Description{}, fmt.Errorf("query bundles: %w", err)
	}
	defer rows.Close()

	d := ziptie.Description{Name: run.Name, Level: run.Level}
	for rows.Next() {
		var bundle, cable int
		if err := rows.Scan(&bundle, &cable); err != nil {
			return ziptie.Description{}, fmt.Errorf("scan bundle: %w", err)
		}
		if n := len(d.Bundles); n == 0 || d.Bundles[n-1].Bundle != bundle {
			d.Bundles = append(d.Bundles, ziptie.BundleDescription{Bundle: bundle})
		}
		last := &d.Bundles[len(d.Bundles)-1]
		last.Cables = append(last.Cables, cable)
	}

	return d, rows.Err()
}

// Runs lists every run, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, level, max_cables, created_at FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Name, &r.Level, &r.MaxCables, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}

	return out, rows.Err()
}
