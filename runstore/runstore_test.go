/*
 * runstore_test.go, part of goatmos.
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

package runstore

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordGet(t *testing.T) {
	s := open(t)
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r := &Run{
		ID:             uuid.New(),
		Started:        start,
		Finished:       start.Add(90 * time.Minute),
		OutputDir:      "results/x",
		Scaling:        0.5,
		Concentrations: map[string]float64{"O2": 0.21},
		Fluxes:         map[string]float64{"CH4": 5e10},
		Converged:      true,
		Iterations:     120,
		FinalDIVFrms:   4e-4,
	}
	require.NoError(t, s.Record(ctx, r))

	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.True(t, r.Started.Equal(got.Started))
	assert.True(t, r.Finished.Equal(got.Finished))
	assert.Equal(t, r.OutputDir, got.OutputDir)
	assert.Equal(t, 0.5, got.Scaling)
	assert.Equal(t, r.Concentrations, got.Concentrations)
	assert.Equal(t, r.Fluxes, got.Fluxes)
	assert.True(t, got.Converged)
	assert.Equal(t, 120, got.Iterations)
	assert.Equal(t, 4e-4, got.FinalDIVFrms)
	assert.Empty(t, got.Error)

	//recording again replaces
	r.Error = "clima failed"
	r.Converged = false
	require.NoError(t, s.Record(ctx, r))
	got, err = s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "clima failed", got.Error)
	assert.False(t, got.Converged)
}

func TestGetMissing(t *testing.T) {
	s := open(t)
	_, err := s.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnfinishedRun(t *testing.T) {
	s := open(t)
	ctx := context.Background()
	r := &Run{ID: uuid.New(), Started: time.Now(), OutputDir: "o", Scaling: 1, FinalDIVFrms: math.NaN()}
	require.NoError(t, s.Record(ctx, r))
	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, got.Finished.IsZero())
	assert.True(t, math.IsNaN(got.FinalDIVFrms))
	assert.Nil(t, got.Concentrations)
}

func TestList(t *testing.T) {
	s := open(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		r := &Run{ID: uuid.New(), Started: base.Add(time.Duration(i) * time.Hour), OutputDir: "o", Scaling: float64(i + 1)}
		ids = append(ids, r.ID)
		require.NoError(t, s.Record(ctx, r))
	}
	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, ids[4], all[0].ID)
	assert.Equal(t, ids[0], all[4].ID)

	some, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, 4.0, some[1].Scaling)
}
