/*
 * table_test.go, part of goatmos.
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

package atmos

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(line int, header []string, rows ...[]string) *Table {
	T := &Table{Header: header, HeaderSrc: Source{Line: line, Text: "header"}}
	for i, r := range rows {
		T.add(r, Source{Line: line + i + 1, Text: "row"})
	}
	return T
}

func TestAssemble(Te *testing.T) {
	a := table(1, []string{"Z", "O"}, []string{"1", "2"}, []string{"3", "4"}, []string{"5", "6"})
	b := table(10, []string{"Z", "H2"}, []string{"1", "7"}, []string{"3", "8"}, []string{"5", "9"})
	T, err := Assemble(TableSet{a, b})
	require.NoError(Te, err)
	assert.Equal(Te, 3, T.Len())
	assert.Equal(Te, []string{"Z", "O", "Z", "H2"}, T.Header)
	assert.Equal(Te, []string{"3", "4", "3", "8"}, T.Rows[1])
	assert.Equal(Te, 2, T.Column("O"))
	assert.Equal(Te, -1, T.Column("CO"))
}

func TestAssembleRowCountMismatch(Te *testing.T) {
	a := table(1, []string{"Z", "O"}, []string{"1", "2"}, []string{"3", "4"}, []string{"5", "6"})
	b := table(10, []string{"Z", "H2"}, []string{"1", "7"}, []string{"3", "8"})
	_, err := Assemble(TableSet{a, b})
	require.Error(Te, err)
	assert.ErrorIs(Te, err, ErrRowCountMismatch)
	assert.Equal(Te, 10, err.(*Error).Line)

	_, err = Assemble(nil)
	assert.ErrorIs(Te, err, ErrUnexpectedFormat)
}

func TestAssembleStrict(Te *testing.T) {
	a := table(1, []string{"Z", "O"}, []string{"5.000E+04", "2"}, []string{"1.500E+05", "4"})
	b := table(10, []string{"Z", "H2"}, []string{"50000", "7"}, []string{"150000.0", "8"})
	_, err := Assemble(TableSet{a, b}, Strict())
	require.NoError(Te, err)

	c := table(20, []string{"Z", "CO"}, []string{"5.000E+04", "7"}, []string{"2.500E+05", "8"})
	_, err = Assemble(TableSet{a, c})
	require.NoError(Te, err)
	_, err = Assemble(TableSet{a, c}, Strict())
	require.Error(Te, err)
	assert.ErrorIs(Te, err, ErrKeyMismatch)
	assert.Equal(Te, 22, err.(*Error).Line)
}

func TestTableCheck(Te *testing.T) {
	T := table(1, []string{"Z", "O"}, []string{"1", "2"}, []string{"3"})
	err := T.Check()
	require.Error(Te, err)
	assert.ErrorIs(Te, err, ErrUnexpectedFormat)
	assert.Equal(Te, 3, err.(*Error).Line)
	_, err = Assemble(TableSet{T})
	assert.ErrorIs(Te, err, ErrUnexpectedFormat)
}

func TestNumeric(Te *testing.T) {
	T := table(1, []string{"Z", "O"}, []string{"5.0E+04", "1.0-120"}, []string{"1.5E+05", "2.0E-10"})
	N, err := T.Numeric()
	require.NoError(Te, err)
	r, c := N.Dims()
	assert.Equal(Te, 2, r)
	assert.Equal(Te, 2, c)
	assert.Equal(Te, []float64{5e4, 1.5e5}, N.Col("Z"))
	assert.InEpsilon(Te, 1e-120, N.At(0, 1), 1e-12)
	assert.Nil(Te, N.Col("H2"))

	bad := table(1, []string{"Z", "O"}, []string{"5.0E+04", "1.0-12"})
	_, err = bad.Numeric()
	require.Error(Te, err)
	assert.ErrorIs(Te, err, ErrMalformedNumber)
	e := err.(*Error)
	assert.Equal(Te, 2, e.Line)
	assert.Equal(Te, "row", e.Content)
	assert.Contains(Te, e.Message, "column 2 (O)")

	empty, err := table(1, []string{"Z", "O"}).Numeric()
	require.NoError(Te, err)
	r, c = empty.Dims()
	assert.Equal(Te, 0, r)
	assert.Equal(Te, 2, c)
	assert.Equal(Te, []float64{}, empty.Col("O"))
}

func TestWriteCSV(Te *testing.T) {
	T := table(1, []string{"Z", "O"}, []string{"5.0E+04", "1.0-120"}, []string{"1.5E+05", "2.0E-10"})
	var raw bytes.Buffer
	require.NoError(Te, WriteCSV(&raw, T, false))
	assert.Equal(Te, "Z,O\n5.0E+04,1.0-120\n1.5E+05,2.0E-10\n", raw.String())

	N, err := T.Numeric()
	require.NoError(Te, err)
	var num bytes.Buffer
	require.NoError(Te, WriteNumericCSV(&num, N, true))
	assert.Equal(Te, ",Z,O\n0,50000.0,1e-120\n1,150000.0,2e-10\n", num.String())
}
