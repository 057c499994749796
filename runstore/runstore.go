/*
 * runstore.go, part of goatmos.
 *
 *
 * Copyright 2024 The goatmos authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Package runstore keeps a ledger of simulation runs in a SQLite database.
package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get when there is no run with the given id.
var ErrNotFound = errors.New("run not found")

// timeFormat has a fixed width, so times sort as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Run is the record of one simulation run.
type Run struct {
	ID             uuid.UUID
	Started        time.Time
	Finished       time.Time
	OutputDir      string
	Scaling        float64 //flux scaling factor, 1 for plain runs.
	Concentrations map[string]float64
	Fluxes         map[string]float64
	Converged      bool
	Iterations     int
	FinalDIVFrms   float64 //NaN if unknown.
	Error          string  //empty if the run succeeded.
}

// Store is a run ledger. It is safe for concurrent use.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started TEXT NOT NULL,
	finished TEXT,
	output_dir TEXT NOT NULL,
	scaling REAL NOT NULL DEFAULT 1.0,
	concentrations TEXT,
	fluxes TEXT,
	converged INTEGER NOT NULL DEFAULT 0,
	iterations INTEGER NOT NULL DEFAULT 0,
	final_divfrms REAL,
	error TEXT
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started);
`

// Open opens, creating it if needed, the ledger at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create table")
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (S *Store) Close() error {
	return S.db.Close()
}

// Path returns the database file name.
func (S *Store) Path() string {
	return S.path
}

// Record inserts r, or replaces the run with the same id.
func (S *Store) Record(ctx context.Context, r *Run) error {
	conc, err := json.Marshal(r.Concentrations)
	if err != nil {
		return errors.Wrap(err, "failed to marshal concentrations")
	}
	flux, err := json.Marshal(r.Fluxes)
	if err != nil {
		return errors.Wrap(err, "failed to marshal fluxes")
	}
	var finished sql.NullString
	if !r.Finished.IsZero() {
		finished = sql.NullString{String: r.Finished.UTC().Format(timeFormat), Valid: true}
	}
	div := sql.NullFloat64{Float64: r.FinalDIVFrms, Valid: !math.IsNaN(r.FinalDIVFrms) && !math.IsInf(r.FinalDIVFrms, 0)}
	S.mu.Lock()
	defer S.mu.Unlock()
	_, err = S.db.ExecContext(ctx, `INSERT OR REPLACE INTO runs
		(id, started, finished, output_dir, scaling, concentrations, fluxes, converged, iterations, final_divfrms, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Started.UTC().Format(timeFormat), finished, r.OutputDir, r.Scaling,
		string(conc), string(flux), r.Converged, r.Iterations, div, r.Error)
	if err != nil {
		return errors.Wrapf(err, "failed to record run %s", r.ID)
	}
	return nil
}

const columns = `id, started, finished, output_dir, scaling, concentrations, fluxes, converged, iterations, final_divfrms, error`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var (
		id, started, outdir     string
		finished, conc, flux, e sql.NullString
		div                     sql.NullFloat64
		r                       Run
	)
	if err := s.Scan(&id, &started, &finished, &outdir, &r.Scaling, &conc, &flux, &r.Converged, &r.Iterations, &div, &e); err != nil {
		return nil, err
	}
	var err error
	if r.ID, err = uuid.Parse(id); err != nil {
		return nil, errors.Wrapf(err, "bad run id %q", id)
	}
	if r.Started, err = time.Parse(timeFormat, started); err != nil {
		return nil, errors.Wrapf(err, "bad start time for run %s", id)
	}
	if finished.Valid {
		if r.Finished, err = time.Parse(timeFormat, finished.String); err != nil {
			return nil, errors.Wrapf(err, "bad finish time for run %s", id)
		}
	}
	for _, v := range []struct {
		s sql.NullString
		m *map[string]float64
	}{{conc, &r.Concentrations}, {flux, &r.Fluxes}} {
		if v.s.Valid && v.s.String != "" {
			if err := json.Unmarshal([]byte(v.s.String), v.m); err != nil {
				return nil, errors.Wrapf(err, "bad overrides for run %s", id)
			}
		}
	}
	r.OutputDir = outdir
	r.FinalDIVFrms = math.NaN()
	if div.Valid {
		r.FinalDIVFrms = div.Float64
	}
	r.Error = e.String
	return &r, nil
}

// Get returns the run with the given id.
func (S *Store) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	S.mu.Lock()
	defer S.mu.Unlock()
	row := S.db.QueryRowContext(ctx, `SELECT `+columns+` FROM runs WHERE id = ?`, id.String())
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(ErrNotFound, id.String())
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get run %s", id)
	}
	return r, nil
}

// List returns the most recent runs, newest first. A limit of 0 or less returns all of them.
func (S *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	S.mu.Lock()
	defer S.mu.Unlock()
	q := `SELECT ` + columns + ` FROM runs ORDER BY started DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := S.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list runs")
	}
	defer rows.Close()
	var ret []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read run")
		}
		ret = append(ret, r)
	}
	return ret, errors.Wrap(rows.Err(), "failed to list runs")
}
