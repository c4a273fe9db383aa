// Package store persists sweep results in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"roomsim/internal/core"
	"roomsim/internal/sweep"
)

// ErrNotFound is returned when a sweep id has no row.
var ErrNotFound = errors.New("sweep not found")

// Store is a handle on a results database.
type Store struct {
	db *sql.DB
}

// SweepInfo describes one saved sweep.
type SweepInfo struct {
	ID        int64
	CreatedAt time.Time
	Name      string
	Runs      int
}

// Open creates or opens the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sweeps (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			name TEXT NOT NULL,
			plan_json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			sweep_id INTEGER NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
			job INTEGER NOT NULL,
			combo INTEGER NOT NULL,
			iteration INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			dirt REAL NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			max_steps INTEGER NOT NULL,
			cleaners INTEGER NOT NULL,
			start_x INTEGER,
			start_y INTEGER,
			total_tiles INTEGER NOT NULL,
			initial_dirty INTEGER NOT NULL,
			final_clean INTEGER NOT NULL,
			final_dirty INTEGER NOT NULL,
			in_progress INTEGER NOT NULL,
			percent_cleaned REAL NOT NULL,
			steps INTEGER NOT NULL,
			movements INTEGER NOT NULL,
			PRIMARY KEY (sweep_id, job)
		);`,
		`CREATE INDEX IF NOT EXISTS runs_combo ON runs(sweep_id, combo);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveSweep stores a plan and its results in one transaction and returns the
// new sweep id.
func (s *Store) SaveSweep(ctx context.Context, plan sweep.Plan, results []sweep.Result) (int64, error) {
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return 0, fmt.Errorf("encode plan: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sweeps(created_at, name, plan_json) VALUES(?,?,?)`,
		time.Now().UTC().Format(time.RFC3339Nano), plan.Name, string(planJSON))
	if err != nil {
		return 0, fmt.Errorf("insert sweep: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO runs(
		sweep_id, job, combo, iteration, seed,
		dirt, width, height, max_steps, cleaners, start_x, start_y,
		total_tiles, initial_dirty, final_clean, final_dirty, in_progress,
		percent_cleaned, steps, movements
	) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, r := range results {
		cfg, rep := r.Job.Config, r.Report
		var sx, sy sql.NullInt64
		if cfg.Start != nil {
			sx = sql.NullInt64{Int64: int64(cfg.Start.X), Valid: true}
			sy = sql.NullInt64{Int64: int64(cfg.Start.Y), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			id, r.Job.Index, r.Job.Combo, r.Job.Iteration, cfg.Seed,
			cfg.DirtFraction, cfg.Width, cfg.Height, cfg.MaxSteps, cfg.Cleaners, sx, sy,
			rep.TotalTiles, rep.InitialDirty, rep.FinalClean, rep.FinalDirty, rep.InProgress,
			rep.PercentCleaned, rep.Steps, rep.Movements,
		); err != nil {
			return 0, fmt.Errorf("insert run %d: %w", r.Job.Index, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Sweeps lists saved sweeps, newest first.
func (s *Store) Sweeps(ctx context.Context) ([]SweepInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.created_at, s.name, COUNT(r.job)
		FROM sweeps s LEFT JOIN runs r ON r.sweep_id = s.id
		GROUP BY s.id ORDER BY s.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SweepInfo
	for rows.Next() {
		var (
			info    SweepInfo
			created string
		)
		if err := rows.Scan(&info.ID, &created, &info.Name, &info.Runs); err != nil {
			return nil, err
		}
		info.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("sweep %d: %w", info.ID, err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Plan returns the plan a sweep was saved with.
func (s *Store) Plan(ctx context.Context, id int64) (sweep.Plan, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT plan_json FROM sweeps WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return sweep.Plan{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return sweep.Plan{}, err
	}
	var p sweep.Plan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return sweep.Plan{}, fmt.Errorf("decode plan %d: %w", id, err)
	}
	return p, nil
}

// Runs loads the results of a sweep ordered by job index.
func (s *Store) Runs(ctx context.Context, id int64) ([]sweep.Result, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM sweeps WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT job, combo, iteration, seed,
			dirt, width, height, max_steps, cleaners, start_x, start_y,
			total_tiles, initial_dirty, final_clean, final_dirty, in_progress,
			percent_cleaned, steps, movements
		FROM runs WHERE sweep_id = ? ORDER BY job`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sweep.Result
	for rows.Next() {
		var (
			r      sweep.Result
			sx, sy sql.NullInt64
		)
		cfg := &r.Job.Config
		rep := &r.Report
		if err := rows.Scan(&r.Job.Index, &r.Job.Combo, &r.Job.Iteration, &cfg.Seed,
			&cfg.DirtFraction, &cfg.Width, &cfg.Height, &cfg.MaxSteps, &cfg.Cleaners, &sx, &sy,
			&rep.TotalTiles, &rep.InitialDirty, &rep.FinalClean, &rep.FinalDirty, &rep.InProgress,
			&rep.PercentCleaned, &rep.Steps, &rep.Movements,
		); err != nil {
			return nil, err
		}
		if sx.Valid && sy.Valid {
			cfg.Start = &core.Pos{X: int(sx.Int64), Y: int(sy.Int64)}
		}
		rep.MaxSteps = cfg.MaxSteps
		out = append(out, r)
	}
	return out, rows.Err()
}
