/*
 * table.go, part of goatmos.
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
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Source locates a row in the file it was read from.
type Source struct {
	Line int
	Text string
}

// Table is a header plus rows of raw tokens. Every row is expected to have
// as many tokens as the header; Check enforces it.
type Table struct {
	Header    []string
	Rows      [][]string
	HeaderSrc Source
	Src       []Source //one per row
}

// TableSet is a sequence of same-shaped tables found in one file, in file order.
type TableSet []*Table

// Len returns the number of data rows (the header is not counted).
func (T *Table) Len() int {
	return len(T.Rows)
}

// Width returns the number of columns.
func (T *Table) Width() int {
	return len(T.Header)
}

func (T *Table) add(fields []string, src Source) {
	T.Rows = append(T.Rows, fields)
	T.Src = append(T.Src, src)
}

func (T *Table) src(i int) Source {
	if i < 0 || i >= len(T.Src) {
		return Source{}
	}
	return T.Src[i]
}

// Check verifies that every row has exactly one token per header column.
func (T *Table) Check() error {
	for i, r := range T.Rows {
		if len(r) != len(T.Header) {
			s := T.src(i)
			return NewError(ErrUnexpectedFormat, s.Line, s.Text, "row has %d fields, header %q has %d", len(r), strings.Join(T.Header, ","), len(T.Header))
		}
	}
	return nil
}

// Column returns the index of the first column named name, or -1.
func (T *Table) Column(name string) int {
	for i, v := range T.Header {
		if v == name {
			return i
		}
	}
	return -1
}

func (T *Table) String() string {
	rows := make([]string, 0, len(T.Rows)+1)
	rows = append(rows, strings.Join(T.Header, ","))
	for _, r := range T.Rows {
		rows = append(rows, strings.Join(r, ","))
	}
	return strings.Join(rows, "\n")
}

// Numeric converts every cell of the table with ParseNumber. The first failure is returned
// with the line where the offending token was read.
func (T *Table) Numeric() (*NumericTable, error) {
	if err := T.Check(); err != nil {
		return nil, err
	}
	ret := &NumericTable{Header: append([]string(nil), T.Header...)}
	if len(T.Rows) == 0 || len(T.Header) == 0 {
		return ret, nil
	}
	data := make([]float64, 0, len(T.Rows)*len(T.Header))
	for i, r := range T.Rows {
		for j, tok := range r {
			f, err := ParseNumber(tok)
			if err != nil {
				s := T.src(i)
				e := err.(*Error)
				e.Line, e.Content = s.Line, s.Text
				e.Message = fmt.Sprintf("column %d (%s): %s", j+1, T.Header[j], e.Message)
				return nil, e
			}
			data = append(data, f)
		}
	}
	ret.Data = mat.NewDense(len(T.Rows), len(T.Header), data)
	return ret, nil
}

// NumericTable is a table whose cells have all been read as numbers.
// Data is nil for a table without rows.
type NumericTable struct {
	Header []string
	Data   *mat.Dense
}

// Dims returns the number of rows and columns.
func (N *NumericTable) Dims() (int, int) {
	if N.Data == nil {
		return 0, len(N.Header)
	}
	return N.Data.Dims()
}

// Col returns a copy of the first column named name, or nil if there is no such column.
func (N *NumericTable) Col(name string) []float64 {
	for i, v := range N.Header {
		if v == name {
			if N.Data == nil {
				return []float64{}
			}
			return mat.Col(nil, i, N.Data)
		}
	}
	return nil
}

// At returns the value in row i, column j.
func (N *NumericTable) At(i, j int) float64 {
	return N.Data.At(i, j)
}
