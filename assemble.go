/*
 * assemble.go, part of goatmos.
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

import "gonum.org/v1/gonum/floats/scalar"

// Tolerances used by Strict to decide that two key values are the same.
const (
	keyAbsTol = 1e-12
	keyRelTol = 1e-9
)

type assembleOptions struct {
	strict bool
}

// AssembleOption modifies the behavior of Assemble.
type AssembleOption func(*assembleOptions)

// Strict makes Assemble verify that the first column of every table (the altitude, Z)
// has the same value, row by row, in all tables.
func Strict() AssembleOption {
	return func(o *assembleOptions) { o.strict = true }
}

// Assemble concatenates the tables in set side by side, into a single table.
// Rows are aligned by position: row i of the result is row i of every table.
// Column names are kept as they are, so a name can appear more than once.
// All tables must have the same number of rows.
func Assemble(set TableSet, opts ...AssembleOption) (*Table, error) {
	o := new(assembleOptions)
	for _, f := range opts {
		f(o)
	}
	if len(set) == 0 {
		return nil, NewError(ErrUnexpectedFormat, 0, "", "no tables to assemble")
	}
	first := set[0]
	width := 0
	for i, t := range set {
		if err := t.Check(); err != nil {
			return nil, err
		}
		if t.Len() != first.Len() {
			return nil, NewError(ErrRowCountMismatch, t.HeaderSrc.Line, t.HeaderSrc.Text,
				"table %d has %d rows, table 1 (line %d) has %d", i+1, t.Len(), first.HeaderSrc.Line, first.Len())
		}
		width += t.Width()
	}
	if o.strict {
		if err := checkKeys(set); err != nil {
			return nil, err
		}
	}
	ret := &Table{
		Header:    make([]string, 0, width),
		Rows:      make([][]string, first.Len()),
		HeaderSrc: first.HeaderSrc,
		Src:       append([]Source(nil), first.Src...),
	}
	for _, t := range set {
		ret.Header = append(ret.Header, t.Header...)
	}
	for i := range ret.Rows {
		row := make([]string, 0, width)
		for _, t := range set {
			row = append(row, t.Rows[i]...)
		}
		ret.Rows[i] = row
	}
	return ret, nil
}

func checkKeys(set TableSet) error {
	first := set[0]
	if first.Width() == 0 {
		return nil
	}
	for _, t := range set[1:] {
		if t.Width() == 0 {
			continue
		}
		for i := range t.Rows {
			a, b := first.Rows[i][0], t.Rows[i][0]
			if sameKey(a, b) {
				continue
			}
			s := t.src(i)
			return NewError(ErrKeyMismatch, s.Line, s.Text, "%s %s doesn't match %s %s of line %d",
				t.Header[0], b, first.Header[0], a, first.src(i).Line)
		}
	}
	return nil
}

func sameKey(a, b string) bool {
	if a == b {
		return true
	}
	fa, err := ParseNumber(a)
	if err != nil {
		return false
	}
	fb, err := ParseNumber(b)
	if err != nil {
		return false
	}
	return scalar.EqualWithinAbsOrRel(fa, fb, keyAbsTol, keyRelTol)
}
