/*
 * params_test.go, part of goatmos.
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

package params

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	atmos "github.com/goatmos/goatmos"
)

const fixture = "../test/input_clima.dat"

func TestRead(Te *testing.T) {
	F, err := ReadFile(fixture)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"NSTEPS", "IMW", "RSURF", "ztop", "STARR", "ICONSERV"}, F.Keys())

	n, err := F.Float("NSTEPS")
	require.NoError(Te, err)
	assert.Equal(Te, 400.0, n)
	z, err := F.Float("ztop")
	require.NoError(Te, err)
	assert.Equal(Te, 1e7, z)

	v, ok := F.Get("STARR")
	assert.True(Te, ok)
	assert.Equal(Te, Value{Text: "Sun", Quoted: true}, v)
	_, err = F.Float("STARR")
	assert.Error(Te, err)
	s, err := F.String("STARR")
	require.NoError(Te, err)
	assert.Equal(Te, "Sun", s)

	_, err = F.Float("NOPE")
	assert.ErrorIs(Te, err, ErrNoParameter)
	_, err = F.String("NOPE")
	assert.ErrorIs(Te, err, ErrNoParameter)
}

func TestReadErrors(Te *testing.T) {
	_, err := Read(strings.NewReader("KEY without separator\n"))
	assert.ErrorIs(Te, err, atmos.ErrUnexpectedFormat)
	_, err = Read(strings.NewReader("* ok\nKEY=   abc  ! not a number\n"))
	require.Error(Te, err)
	assert.ErrorIs(Te, err, atmos.ErrMalformedNumber)
	assert.Equal(Te, 2, err.(*atmos.Error).Line)
}

func TestSet(Te *testing.T) {
	orig, err := os.ReadFile(fixture)
	require.NoError(Te, err)
	F, err := Read(bytes.NewReader(orig))
	require.NoError(Te, err)

	require.NoError(Te, F.SetInt("NSTEPS", 500))
	require.NoError(Te, F.SetFloat("RSURF", 0.3))
	require.NoError(Te, F.SetInt("IMW", 10))
	require.NoError(Te, F.SetString("STARR", "Sun2"))
	assert.ErrorIs(Te, F.SetInt("NOPE", 1), ErrNoParameter)

	var buf bytes.Buffer
	require.NoError(Te, F.Write(&buf))
	got := strings.Split(buf.String(), "\n")
	want := strings.Split(string(orig), "\n")
	require.Equal(Te, len(want), len(got))
	changed := map[int]string{
		1: "NSTEPS=    500          !step number (200 - 500)",
		2: "IMW=       10            !0 for satellite data, 1 for ...",
		3: "RSURF=     0.3          !Surface albedo",
		5: `STARR=     "Sun2"        !Star name`,
	}
	for i := range want {
		if c, ok := changed[i]; ok {
			assert.Equal(Te, c, got[i])
			continue
		}
		assert.Equal(Te, want[i], got[i], "line %d", i+1)
	}

	G, err := Read(&buf)
	require.NoError(Te, err)
	n, err := G.Float("IMW")
	require.NoError(Te, err)
	assert.Equal(Te, 10.0, n)
	s, _ := G.String("STARR")
	assert.Equal(Te, "Sun2", s)
}

func TestWriteFile(Te *testing.T) {
	F, err := ReadFile(fixture)
	require.NoError(Te, err)
	name := Te.TempDir() + "/input.dat"
	require.NoError(Te, F.WriteFile(name))
	a, _ := os.ReadFile(fixture)
	b, _ := os.ReadFile(name)
	assert.Equal(Te, string(a), string(b))
}
