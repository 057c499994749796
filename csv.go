/*
 * csv.go, part of goatmos.
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
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// WriteCSV writes T to w, header first. If index is true, each row starts with its 0-based
// position, under an empty column name.
func WriteCSV(w io.Writer, T *Table, index bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(withIndex(T.Header, "", index)); err != nil {
		return err
	}
	for i, r := range T.Rows {
		if err := cw.Write(withIndex(r, strconv.Itoa(i), index)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteNumericCSV is WriteCSV for a NumericTable. Numbers are written with FormatNumber.
func WriteNumericCSV(w io.Writer, N *NumericTable, index bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(withIndex(N.Header, "", index)); err != nil {
		return err
	}
	r, c := N.Dims()
	row := make([]string, c)
	for i := 0; i < r; i++ {
		for j := range row {
			row[j] = FormatNumber(N.Data.At(i, j))
		}
		if err := cw.Write(withIndex(row, strconv.Itoa(i), index)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func withIndex(r []string, idx string, index bool) []string {
	if !index {
		return r
	}
	ret := make([]string, 0, len(r)+1)
	ret = append(ret, idx)
	return append(ret, r...)
}

// WriteFile creates name and lets write fill it. The file is closed on every path, and
// a failure to close is reported if nothing else failed.
func WriteFile(name string, write func(io.Writer) error) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
