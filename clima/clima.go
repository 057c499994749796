/*
 * clima.go, part of goatmos.
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
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	atmos "github.com/goatmos/goatmos"
)

// Boxing is the header line that opens and closes the state tables.
const Boxing = "J     P         ALT         T        CONVEC       DT          TOLD        FH20       FSAVE        FO3        TCOOL       THEAT"

// Names of the CSV files written by WriteCSV.
const (
	InitialFile    = "parsed_clima_initial.csv"
	FinalFile      = "parsed_clima_final.csv"
	IterationsFile = "parsed_clima_iterations.csv"
)

// IterationHeader names the values taken from each diagnostic line, in order.
var IterationHeader = []string{"NST", "JCONV", "CHG", "dt0", "DIVF(1)", "DIVFrms", "DT(ND)", "T(ND)"}

var boxingJoined = strings.Join(strings.Fields(Boxing), ",")

func isBoxing(joined, raw string) bool {
	return strings.Contains(raw, Boxing) || joined == boxingJoined
}

func isIteration(raw string) bool {
	return strings.Contains(raw, "NST") && strings.Contains(raw, "DIVFrms")
}

// Result holds the tables recovered from a climate output file.
// Initial and Final are nil when the corresponding boxed table is missing.
type Result struct {
	Initial    *atmos.Table
	Final      *atmos.Table
	Iterations *atmos.NumericTable
	Spans      int //boxed tables found
}

// ParseFile parses the climate output file name.
func ParseFile(name string) (*Result, error) {
	lines, err := atmos.ReadLinesFile(name)
	if err != nil {
		return nil, err
	}
	res, err := Parse(lines)
	return res, atmos.Decorate(err, "clima.ParseFile", filepath.Base(name))
}

// ParseReader reads all of r and parses it.
func ParseReader(r io.Reader) (*Result, error) {
	lines, err := atmos.ReadLines(r)
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

// Parse recovers the initial and final state tables and the iteration diagnostics from lines.
// If fewer than two boxed tables are found, the partial result is returned together
// with an error, so whatever was recovered can still be used.
func Parse(lines atmos.Lines) (*Result, error) {
	boxes := &atmos.SectionReader{Marker: isBoxing, Toggle: true}
	iters := make([]float64, 0, len(IterationHeader)*64)
	err := lines.Each(func(n int, l string) (bool, error) {
		if err := boxes.Feed(n, l); err != nil {
			return false, err
		}
		if isIteration(l) {
			v, err := parseIteration(n, l)
			if err != nil {
				return false, err
			}
			iters = append(iters, v...)
		}
		return true, nil
	})
	if err != nil {
		return nil, atmos.Decorate(err, "clima.Parse", "")
	}
	spans := boxes.Tables()
	ret := &Result{Spans: len(spans), Iterations: &atmos.NumericTable{Header: append([]string(nil), IterationHeader...)}}
	if n := len(iters) / len(IterationHeader); n > 0 {
		ret.Iterations.Data = mat.NewDense(n, len(IterationHeader), iters)
	}
	for i, t := range spans {
		if i > 1 {
			break
		}
		if err := t.Check(); err != nil {
			return nil, atmos.Decorate(err, "clima.Parse", "")
		}
	}
	if len(spans) > 0 {
		ret.Initial = spans[0]
	}
	if len(spans) > 1 {
		ret.Final = spans[1]
	}
	atmos.Logger("clima").Debug("parsed climate output",
		zap.Int("tables", len(spans)), zap.Int("iterations", len(iters)/len(IterationHeader)))
	if len(spans) < 2 {
		return ret, atmos.NewError(atmos.ErrUnexpectedFormat, 0, "", "found %d boxed state tables, expected 2", len(spans))
	}
	return ret, nil
}

// parseIteration reads one diagnostic line, such as
// NST=  1 JCONV=  0 CHG= 0.1 dt0= 1.0E+04 DIVF(1)= 0.2 DIVFrms= 0.002 DT(ND)= 0.4 T(ND)= 288.2
func parseIteration(n int, line string) ([]float64, error) {
	s := strings.Join(strings.Fields(line), " ")
	f := strings.Fields(strings.ReplaceAll(s, "= ", "="))
	if len(f) < len(IterationHeader) {
		return nil, atmos.NewError(atmos.ErrUnexpectedFormat, n, line, "diagnostic line has %d key=value fields, expected %d", len(f), len(IterationHeader))
	}
	ret := make([]float64, len(IterationHeader))
	for i := range ret {
		v := f[i]
		if j := strings.LastIndex(v, "="); j >= 0 {
			v = v[j+1:]
		}
		num, err := atmos.ParseNumber(v)
		if err != nil {
			e := err.(*atmos.Error)
			e.Line, e.Content = n, line
			return nil, e
		}
		ret[i] = num
	}
	return ret, nil
}

// WriteCSV writes the three tables in R to dir, as InitialFile, FinalFile and IterationsFile.
// A missing state table is written as a file with only the header.
func (R *Result) WriteCSV(dir string) error {
	states := []struct {
		name string
		t    *atmos.Table
	}{{InitialFile, R.Initial}, {FinalFile, R.Final}}
	for _, v := range states {
		t := v.t
		if t == nil {
			t = &atmos.Table{Header: strings.Fields(Boxing)}
		}
		err := atmos.WriteFile(filepath.Join(dir, v.name), func(w io.Writer) error {
			return atmos.WriteCSV(w, t, false)
		})
		if err != nil {
			return err
		}
	}
	return atmos.WriteFile(filepath.Join(dir, IterationsFile), func(w io.Writer) error {
		return atmos.WriteNumericCSV(w, R.Iterations, false)
	})
}
