/*
 * clima_test.go, part of goatmos.
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

package clima

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	atmos "github.com/goatmos/goatmos"
)

func TestParseFile(Te *testing.T) {
	res, err := ParseFile("../test/clima_allout.tab")
	require.NoError(Te, err)
	assert.Equal(Te, 2, res.Spans)
	require.NotNil(Te, res.Initial)
	require.NotNil(Te, res.Final)
	assert.Equal(Te, strings.Fields(Boxing), res.Initial.Header)
	assert.Equal(Te, 3, res.Initial.Len())
	assert.Equal(Te, 3, res.Final.Len())
	assert.Equal(Te, "1.800E+02", res.Initial.Rows[0][3])
	assert.Equal(Te, "1.000-102", res.Final.Rows[0][9])

	r, c := res.Iterations.Dims()
	assert.Equal(Te, 3, r)
	assert.Equal(Te, 8, c)
	assert.Equal(Te, IterationHeader, res.Iterations.Header)
	assert.Equal(Te, []float64{1, 2, 3}, res.Iterations.Col("NST"))
	assert.InDelta(Te, 0.002, res.Iterations.At(0, 5), 1e-15)
	assert.InDelta(Te, -0.005, res.Iterations.At(2, 6), 1e-15)
}

func TestParseMissingFinal(Te *testing.T) {
	in := atmos.Lines{" " + Boxing, "  1 2 3 4 5 6 7 8 9 10 11 12", " " + Boxing}
	res, err := Parse(in)
	require.Error(Te, err)
	assert.ErrorIs(Te, err, atmos.ErrUnexpectedFormat)
	require.NotNil(Te, res)
	assert.Equal(Te, 1, res.Spans)
	assert.NotNil(Te, res.Initial)
	assert.Nil(Te, res.Final)
	r, _ := res.Iterations.Dims()
	assert.Zero(Te, r)
}

func TestParseBadIteration(Te *testing.T) {
	in := atmos.Lines{"x", " NST=  1 JCONV=  0 DIVFrms= 2.0E-03"}
	_, err := Parse(in)
	require.Error(Te, err)
	assert.ErrorIs(Te, err, atmos.ErrUnexpectedFormat)
	assert.Equal(Te, 2, err.(*atmos.Error).Line)

	in = atmos.Lines{" NST=  1 JCONV=  0 CHG= 1.0-01 dt0= 1 DIVF(1)= 1 DIVFrms= 1 DT(ND)= 1 T(ND)= 1"}
	_, err = Parse(in)
	require.Error(Te, err)
	assert.ErrorIs(Te, err, atmos.ErrMalformedNumber)
	assert.Equal(Te, 1, err.(*atmos.Error).Line)
}

func TestParseUnevenRow(Te *testing.T) {
	in := atmos.Lines{" " + Boxing, "  1 2 3", " " + Boxing, " " + Boxing, " " + Boxing}
	_, err := Parse(in)
	require.Error(Te, err)
	assert.ErrorIs(Te, err, atmos.ErrUnexpectedFormat)
	assert.Equal(Te, 2, err.(*atmos.Error).Line)
}

func TestWriteCSV(Te *testing.T) {
	res, err := ParseFile("../test/clima_allout.tab")
	require.NoError(Te, err)
	dir := Te.TempDir()
	require.NoError(Te, res.WriteCSV(dir))
	b, err := os.ReadFile(filepath.Join(dir, IterationsFile))
	require.NoError(Te, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(Te, lines, 4)
	assert.Equal(Te, "NST,JCONV,CHG,dt0,DIVF(1),DIVFrms,DT(ND),T(ND)", lines[0])
	assert.Equal(Te, "1.0,0.0,0.1,10000.0,0.2,0.002,0.4,288.2", lines[1])

	b, err = os.ReadFile(filepath.Join(dir, FinalFile))
	require.NoError(Te, err)
	assert.True(Te, strings.HasPrefix(string(b), "J,P,ALT,T,CONVEC,DT,TOLD,FH20,FSAVE,FO3,TCOOL,THEAT\n"))
	assert.Contains(Te, string(b), "1.000-102")
}

func TestConvergence(Te *testing.T) {
	res, err := ParseFile("../test/clima_allout.tab")
	require.NoError(Te, err)

	c := res.Convergence(DefaultCriteria())
	assert.Equal(Te, 3, c.Iterations)
	assert.InDelta(Te, 5e-4, c.FinalDIVFrms, 1e-15)
	assert.InDelta(Te, 0.4, c.MaxAbsDT, 1e-15)
	assert.False(Te, c.Converged)

	c = res.Convergence(Criteria{DIVFrms: 1e-3, DT: 0.05, Window: 2})
	assert.True(Te, c.Converged)
	assert.InDelta(Te, 0.0075, c.MeanDT, 1e-12)
	assert.InDelta(Te, 0.0176776695, c.StdDT, 1e-9)
	assert.InDelta(Te, 0.02, c.MaxAbsDT, 1e-15)

	c = res.Convergence(Criteria{DIVFrms: 1e-4, DT: 0.05, Window: 1})
	assert.False(Te, c.Converged)
	assert.Zero(Te, c.StdDT)

	empty := &Result{Iterations: &atmos.NumericTable{Header: IterationHeader}}
	c = empty.Convergence(DefaultCriteria())
	assert.Zero(Te, c.Iterations)
	assert.False(Te, c.Converged)
}
