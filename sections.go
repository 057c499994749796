/*
 * sections.go, part of goatmos.
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

import "strings"

// just for brevity
var con func(string, string) bool = strings.Contains

// SectionReader recovers tables from a stream of lines using only text markers.
// It is fed one line at a time, so several readers can share a single scan of a file.
//
// A line matching Marker starts a new table (its tokens are the header) after
// flushing the table in progress. Start and Stop turn capture on and off,
// Skip ignores a fixed number of lines. The zero value, with a Marker, captures
// every table in the stream.
type SectionReader struct {
	//Marker is checked against the tokens joined by commas and against the raw line.
	Marker func(joined, raw string) bool
	//Start turns capture on. The start line itself is consumed.
	Start func(raw string) bool
	//Stop flushes the table in progress and turns capture off.
	Stop func(raw string) bool
	//KeepStopLine appends the stop line to the table before it is flushed.
	KeepStopLine bool
	//Terminal makes a stop line end the scan for good.
	Terminal bool
	//Skip turns capture off and ignores the line and the SkipLines-1 lines after it.
	Skip      func(raw string) bool
	SkipLines int
	//ArmOnMarker lets a marker line turn capture on.
	ArmOnMarker bool
	//Toggle makes the marker alternate between opening a table and closing it.
	//The closing marker line is not part of the table.
	Toggle bool
	//Tokenize splits a line into fields. strings.Fields if nil.
	Tokenize func(string) []string

	init      bool
	capturing bool
	done      bool
	skipUntil int
	current   *Table
	tables    TableSet
}

func (R *SectionReader) setup() {
	R.init = true
	R.capturing = R.Start == nil && !R.ArmOnMarker && !R.Toggle
	if R.Tokenize == nil {
		R.Tokenize = strings.Fields
	}
}

func (R *SectionReader) flush() {
	if R.current != nil {
		R.tables = append(R.tables, R.current)
		R.current = nil
	}
}

// Capturing reports whether the next line would be added to a table.
func (R *SectionReader) Capturing() bool {
	return R.capturing
}

// Done reports whether a terminal stop line has been seen.
func (R *SectionReader) Done() bool {
	return R.done
}

// Feed processes line number n. It only fails when a data row turns up before any
// header row, which means the section markers don't describe the file.
func (R *SectionReader) Feed(n int, line string) error {
	if !R.init {
		R.setup()
	}
	if R.done || n <= R.skipUntil {
		return nil
	}
	raw := strings.TrimRight(line, "\r\n")
	if R.Skip != nil && R.Skip(raw) {
		R.capturing = false
		R.skipUntil = n + R.SkipLines - 1
		return nil
	}
	if R.Start != nil && R.Start(raw) {
		R.capturing = true
		return nil
	}
	stop := R.Stop != nil && R.Stop(raw)
	fields := R.Tokenize(raw)
	if len(fields) > 0 {
		src := Source{Line: n, Text: raw}
		marker := R.Marker != nil && R.Marker(strings.Join(fields, ","), raw)
		switch {
		case marker && R.Toggle && R.capturing:
			R.flush()
			R.capturing = false
		case marker && (R.capturing || R.ArmOnMarker || R.Toggle):
			R.flush()
			R.capturing = true
			R.current = &Table{Header: fields, HeaderSrc: src}
		case R.capturing && (!stop || R.KeepStopLine):
			if R.current == nil {
				return NewError(ErrUnexpectedFormat, n, raw, "data row before any table header")
			}
			R.current.add(fields, src)
		}
	}
	if stop {
		R.flush()
		R.capturing = false
		if R.Terminal {
			R.done = true
		}
	}
	return nil
}

// Tables flushes the table in progress, if any, and returns every table read so far.
func (R *SectionReader) Tables() TableSet {
	R.flush()
	return R.tables
}

// ReadSections feeds every line in lines to R and returns its tables.
func ReadSections(lines Lines, R *SectionReader) (TableSet, error) {
	return ReadSectionsFrom(lines, 1, R)
}

// ReadSectionsFrom is ReadSections ignoring the lines before line number from.
func ReadSectionsFrom(lines Lines, from int, R *SectionReader) (TableSet, error) {
	err := lines.Each(func(n int, l string) (bool, error) {
		if n < from {
			return true, nil
		}
		if err := R.Feed(n, l); err != nil {
			return false, err
		}
		return !R.Done(), nil
	})
	if err != nil {
		return nil, err
	}
	return R.Tables(), nil
}

// JoinedContains returns a marker matching lines whose comma-joined tokens contain frag.
func JoinedContains(frag string) func(joined, raw string) bool {
	return func(joined, _ string) bool { return con(joined, frag) }
}

// RawContains returns a trigger matching lines that contain frag.
func RawContains(frag string) func(raw string) bool {
	return func(raw string) bool { return con(raw, frag) }
}
